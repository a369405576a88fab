package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
)

type mapConfig map[string]interface{}

func (m mapConfig) GetValue(_ context.Context, path string) interface{} {
	return m[path]
}

type stubCart struct {
	totals []string
	err    error
	calls  int
}

func (s *stubCart) GetActiveCart(_ context.Context) (*models.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	i := s.calls
	if i >= len(s.totals) {
		i = len(s.totals) - 1
	}
	s.calls++
	return &models.Quote{ID: "q_1", SubtotalWithDiscount: decimal.RequireFromString(s.totals[i])}, nil
}

func cartWith(total string) *stubCart {
	return &stubCart{totals: []string{total}}
}

type recordingFormatter struct {
	amount        float64
	includeSymbol bool
	precision     int
}

func (r *recordingFormatter) Format(amount float64, includeSymbol bool, precision int) string {
	r.amount, r.includeSymbol, r.precision = amount, includeSymbol, precision
	return fmt.Sprintf("%.*f", precision, amount)
}

func newCalc(cfg mapConfig, cart CartProvider) *ProgressCalculator {
	return NewProgressCalculator(cfg, cart, &recordingFormatter{})
}

func TestIsEnabled(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"unset", nil, false},
		{"string one", "1", true},
		{"string zero", "0", false},
		{"empty string", "", false},
		{"bool true", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCalc(mapConfig{PathProgressEnabled: tt.value}, cartWith("0"))
			assert.Equal(t, tt.want, c.IsEnabled(context.Background()))
		})
	}
}

func TestFreeShippingMinValue_StandaloneWhenMethodConfigOff(t *testing.T) {
	ctx := context.Background()
	for _, active := range []interface{}{nil, "0", "1"} {
		for _, subtotal := range []interface{}{nil, "0", "75", "999.99"} {
			cfg := mapConfig{
				PathUseMethodConfig:      "0",
				PathFreeShippingActive:   active,
				PathFreeShippingSubtotal: subtotal,
				PathProgressMinTotal:     "50",
			}
			c := newCalc(cfg, cartWith("0"))
			assert.Equal(t, 50.0, c.FreeShippingMinValue(ctx), "active=%v subtotal=%v", active, subtotal)
		}
	}
}

func TestFreeShippingMinValue_MethodSubtotalWhenActive(t *testing.T) {
	cfg := mapConfig{
		PathUseMethodConfig:      "1",
		PathFreeShippingActive:   "1",
		PathFreeShippingSubtotal: "75",
		PathProgressMinTotal:     "50",
	}
	c := newCalc(cfg, cartWith("0"))

	assert.Equal(t, 75.0, c.FreeShippingMinValue(context.Background()))
	assert.Equal(t, 75.0, c.FreeShippingMethodMinValue(context.Background()))
}

func TestFreeShippingMinValue_FallsBackWhenCarrierInactive(t *testing.T) {
	cfg := mapConfig{
		PathUseMethodConfig:      "1",
		PathFreeShippingActive:   "0",
		PathFreeShippingSubtotal: "75",
		PathProgressMinTotal:     "50",
	}
	c := newCalc(cfg, cartWith("0"))

	assert.Equal(t, 50.0, c.FreeShippingMinValue(context.Background()))
}

func TestScenario_BelowStandaloneMinimum(t *testing.T) {
	ctx := context.Background()
	cfg := mapConfig{
		PathProgressEnabled:  "1",
		PathUseMethodConfig:  "0",
		PathProgressMinTotal: "50",
	}
	c := newCalc(cfg, cartWith("30"))

	assert.True(t, c.IsEnabled(ctx))

	eligible, err := c.IsFreeShippingEligible(ctx)
	require.NoError(t, err)
	assert.False(t, eligible)

	diff, err := c.FreeShippingDifference(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20.0, diff)

	percent, err := c.FreeShippingCompletionPercent(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, percent, 1e-9)
}

func TestScenario_AboveMethodMinimum(t *testing.T) {
	ctx := context.Background()
	cfg := mapConfig{
		PathUseMethodConfig:      "1",
		PathFreeShippingActive:   "1",
		PathFreeShippingSubtotal: "75",
	}
	c := newCalc(cfg, cartWith("80"))

	eligible, err := c.IsFreeShippingEligible(ctx)
	require.NoError(t, err)
	assert.True(t, eligible)

	diff, err := c.FreeShippingDifference(ctx)
	require.NoError(t, err)
	assert.Equal(t, -5.0, diff)

	percent, err := c.FreeShippingCompletionPercent(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 106.6667, percent, 1e-4)
}

func TestScenario_InactiveCarrierNeverEligible(t *testing.T) {
	ctx := context.Background()
	cfg := mapConfig{
		PathUseMethodConfig:      "1",
		PathFreeShippingActive:   "0",
		PathFreeShippingSubtotal: "75",
		PathProgressMinTotal:     "50",
	}
	c := newCalc(cfg, cartWith("1000"))

	eligible, err := c.IsFreeShippingEligible(ctx)
	require.NoError(t, err)
	assert.False(t, eligible)

	// difference and percent still use the standalone minimum in this state
	diff, err := c.FreeShippingDifference(ctx)
	require.NoError(t, err)
	assert.Equal(t, -950.0, diff)

	percent, err := c.FreeShippingCompletionPercent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, percent)
}

func TestScenario_ZeroMinimum(t *testing.T) {
	ctx := context.Background()
	c := newCalc(mapConfig{PathProgressMinTotal: "0"}, cartWith("10"))

	percent, err := c.FreeShippingCompletionPercent(ctx)
	require.NoError(t, err)
	assert.True(t, math.IsInf(percent, 1))

	eligible, err := c.IsFreeShippingEligible(ctx)
	require.NoError(t, err)
	assert.True(t, eligible)
}

func TestZeroMinimumAndEmptyCart(t *testing.T) {
	c := newCalc(mapConfig{}, cartWith("0"))

	percent, err := c.FreeShippingCompletionPercent(context.Background())
	require.NoError(t, err)
	assert.True(t, math.IsNaN(percent))
}

func TestDifferenceIsSignedAndUnclamped(t *testing.T) {
	ctx := context.Background()
	cfg := mapConfig{PathProgressMinTotal: "49.99"}

	for _, total := range []string{"0", "12.34", "49.99", "50", "1234.56"} {
		c := newCalc(cfg, cartWith(total))

		diff, err := c.FreeShippingDifference(ctx)
		require.NoError(t, err)

		current, err := c.CurrentTotal(ctx)
		require.NoError(t, err)
		assert.Equal(t, c.FreeShippingMinValue(ctx)-current, diff, "total %s", total)
	}
}

func TestCartErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	cfg := mapConfig{PathProgressEnabled: "1", PathProgressMinTotal: "50"}

	for _, sentinel := range []error{apperrors.ErrCartUnavailable, apperrors.ErrConfigOrData} {
		c := newCalc(cfg, &stubCart{err: sentinel})

		_, err := c.CurrentTotal(ctx)
		assert.ErrorIs(t, err, sentinel)

		_, err = c.IsFreeShippingEligible(ctx)
		assert.ErrorIs(t, err, sentinel)

		_, err = c.FreeShippingDifference(ctx)
		assert.ErrorIs(t, err, sentinel)

		_, err = c.FreeShippingCompletionPercent(ctx)
		assert.ErrorIs(t, err, sentinel)

		_, err = c.Summary(ctx)
		assert.ErrorIs(t, err, sentinel)
	}
}

func TestCurrentTotalIsReadOnEveryCall(t *testing.T) {
	ctx := context.Background()
	cart := &stubCart{totals: []string{"10", "20"}}
	c := newCalc(mapConfig{}, cart)

	first, err := c.CurrentTotal(ctx)
	require.NoError(t, err)
	second, err := c.CurrentTotal(ctx)
	require.NoError(t, err)

	assert.Equal(t, 10.0, first)
	assert.Equal(t, 20.0, second)
	assert.Equal(t, 2, cart.calls)
}

func TestFormattedPrice(t *testing.T) {
	f := &recordingFormatter{}
	c := NewProgressCalculator(mapConfig{}, cartWith("0"), f)

	assert.Equal(t, "20.00", c.FormattedPrice(20))
	assert.False(t, f.includeSymbol)
	assert.Equal(t, DefaultPricePrecision, f.precision)

	assert.Equal(t, "19.9", c.FormatPrice(19.94, 1))
	assert.Equal(t, 1, f.precision)
	assert.Equal(t, 19.94, f.amount)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		cart := cartWith("30")
		c := newCalc(mapConfig{PathProgressEnabled: "0"}, cart)

		summary, err := c.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, &models.ProgressSummary{Enabled: false}, summary)
		assert.Zero(t, cart.calls)
	})

	t.Run("enabled", func(t *testing.T) {
		cfg := mapConfig{PathProgressEnabled: "1", PathProgressMinTotal: "50"}
		c := newCalc(cfg, cartWith("30"))

		summary, err := c.Summary(ctx)
		require.NoError(t, err)
		assert.True(t, summary.Enabled)
		assert.False(t, summary.Eligible)
		assert.Equal(t, 50.0, summary.MinValue)
		assert.Equal(t, 30.0, summary.CurrentTotal)
		assert.Equal(t, 20.0, summary.Difference)
		assert.InDelta(t, 60.0, summary.CompletionPercent, 1e-9)
	})
}

func TestQuote(t *testing.T) {
	c := newCalc(mapConfig{}, cartWith("12.5"))

	q, err := c.Quote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "q_1", q.ID)
}
