package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/config"
)

func TestRoundPrice(t *testing.T) {
	tests := []struct {
		amount    float64
		precision int
		want      float64
	}{
		{2.675, 2, 2.68},
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{19.994, 2, 19.99},
		{20, 2, 20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundPrice(tt.amount, tt.precision), "RoundPrice(%v, %d)", tt.amount, tt.precision)
	}
}

func TestPriceFormatter_Format(t *testing.T) {
	f := NewPriceFormatter(config.CurrencyConfig{Code: "USD", Locale: "en-US"})

	tests := []struct {
		name      string
		amount    float64
		precision int
		want      string
	}{
		{"pads fraction", 20, 2, "20.00"},
		{"rounds half up", 2.675, 2, "2.68"},
		{"groups thousands", 1234.5, 2, "1,234.50"},
		{"no fraction", 49.5, 0, "50"},
		{"negative precision", 49.4, -1, "49"},
		{"negative amount", -5, 2, "-5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.amount, false, tt.precision))
		})
	}
}

func TestPriceFormatter_Locale(t *testing.T) {
	f := NewPriceFormatter(config.CurrencyConfig{Code: "EUR", Locale: "de-DE"})

	assert.Equal(t, "1.234,50", f.Format(1234.5, false, 2))
}

func TestPriceFormatter_Symbol(t *testing.T) {
	f := NewPriceFormatter(config.CurrencyConfig{Code: "USD", Locale: "en-US"})

	withSymbol := f.Format(20, true, 2)
	assert.Contains(t, withSymbol, "20.00")
	assert.NotEqual(t, "20.00", withSymbol)
}

func TestPriceFormatter_InvalidConfigFallsBack(t *testing.T) {
	f := NewPriceFormatter(config.CurrencyConfig{Code: "???", Locale: "!!"})

	assert.Equal(t, "20.00", f.Format(20, false, 2))
}

func TestPriceFormatter_NonFinite(t *testing.T) {
	f := NewPriceFormatter(config.CurrencyConfig{Code: "USD", Locale: "en-US"})

	assert.NotPanics(t, func() {
		assert.Equal(t, "+Inf", f.Format(math.Inf(1), false, 2))
		assert.Equal(t, "-Inf", f.Format(math.Inf(-1), true, 2))
		assert.Equal(t, "NaN", f.Format(math.NaN(), false, 0))
	})
}
