package service

import (
	"context"
	"fmt"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
)

// Configuration paths read by the progress calculator. The strings are shared with the
// admin panel and must not change.
const (
	PathProgressEnabled      = "checkout/cart/freeshipping_progress_enable"
	PathUseMethodConfig      = "checkout/cart/use_freeshipping_method_config"
	PathProgressMinTotal     = "checkout/cart/freeshipping_progress_min_total"
	PathFreeShippingActive   = "carriers/freeshipping/active"
	PathFreeShippingSubtotal = "carriers/freeshipping/free_shipping_subtotal"
)

// ProgressPaths lists every configuration path the calculator reads.
var ProgressPaths = []string{
	PathProgressEnabled,
	PathUseMethodConfig,
	PathProgressMinTotal,
	PathFreeShippingActive,
	PathFreeShippingSubtotal,
}

// DefaultPricePrecision is the number of fraction digits used by FormattedPrice.
const DefaultPricePrecision = 2

// ConfigProvider resolves scoped configuration values by path. Unset values are returned as nil.
type ConfigProvider interface {
	GetValue(ctx context.Context, path string) interface{}
}

// CartProvider returns the active cart of the current checkout session.
type CartProvider interface {
	GetActiveCart(ctx context.Context) (*models.Quote, error)
}

// CurrencyFormatter renders an amount for display.
type CurrencyFormatter interface {
	Format(amount float64, includeSymbol bool, precision int) string
}

// ProgressCalculator computes the free shipping progress for the active cart.
// It holds no state of its own. Every call reads configuration and the cart again.
type ProgressCalculator struct {
	config    ConfigProvider
	cart      CartProvider
	formatter CurrencyFormatter
}

// NewProgressCalculator creates a calculator over the given collaborators.
func NewProgressCalculator(config ConfigProvider, cart CartProvider, formatter CurrencyFormatter) *ProgressCalculator {
	return &ProgressCalculator{
		config:    config,
		cart:      cart,
		formatter: formatter,
	}
}

// IsEnabled reports whether the progress widget is switched on.
func (c *ProgressCalculator) IsEnabled(ctx context.Context) bool {
	return toBool(c.config.GetValue(ctx, PathProgressEnabled))
}

// Quote returns the active cart.
func (c *ProgressCalculator) Quote(ctx context.Context) (*models.Quote, error) {
	return c.cart.GetActiveCart(ctx)
}

// CurrentTotal returns the active cart's subtotal after discounts.
func (c *ProgressCalculator) CurrentTotal(ctx context.Context) (float64, error) {
	quote, err := c.cart.GetActiveCart(ctx)
	if err != nil {
		return 0, fmt.Errorf("current total: %w", err)
	}
	return quote.SubtotalWithDiscount.InexactFloat64(), nil
}

// FreeShippingMethodMinValue returns the free shipping carrier's own minimum subtotal.
func (c *ProgressCalculator) FreeShippingMethodMinValue(ctx context.Context) float64 {
	return toFloat(c.config.GetValue(ctx, PathFreeShippingSubtotal))
}

// FreeShippingMinValue returns the subtotal that qualifies for free shipping. The carrier's
// minimum is used only when the widget is told to follow it and the carrier is active.
func (c *ProgressCalculator) FreeShippingMinValue(ctx context.Context) float64 {
	if c.useMethodConfig(ctx) && c.carrierActive(ctx) {
		return c.FreeShippingMethodMinValue(ctx)
	}
	return toFloat(c.config.GetValue(ctx, PathProgressMinTotal))
}

// IsFreeShippingEligible reports whether the active cart qualifies. When the widget follows the
// carrier's configuration and the carrier is inactive the cart never qualifies, whatever its total.
func (c *ProgressCalculator) IsFreeShippingEligible(ctx context.Context) (bool, error) {
	currentTotal, err := c.CurrentTotal(ctx)
	if err != nil {
		return false, err
	}

	if c.useMethodConfig(ctx) {
		if c.carrierActive(ctx) {
			return currentTotal >= c.FreeShippingMethodMinValue(ctx), nil
		}
		return false, nil
	}

	return currentTotal >= c.FreeShippingMinValue(ctx), nil
}

// FreeShippingDifference returns how much is left to spend. Negative once the cart qualifies.
func (c *ProgressCalculator) FreeShippingDifference(ctx context.Context) (float64, error) {
	currentTotal, err := c.CurrentTotal(ctx)
	if err != nil {
		return 0, err
	}
	return c.FreeShippingMinValue(ctx) - currentTotal, nil
}

// FreeShippingCompletionPercent returns the cart total as a percentage of the minimum.
// A zero minimum yields +Inf (NaN for an empty cart).
func (c *ProgressCalculator) FreeShippingCompletionPercent(ctx context.Context) (float64, error) {
	currentTotal, err := c.CurrentTotal(ctx)
	if err != nil {
		return 0, err
	}
	return (currentTotal / c.FreeShippingMinValue(ctx)) * 100, nil
}

// FormattedPrice formats price without a currency symbol at the default precision.
func (c *ProgressCalculator) FormattedPrice(price float64) string {
	return c.FormatPrice(price, DefaultPricePrecision)
}

// FormatPrice formats price without a currency symbol.
func (c *ProgressCalculator) FormatPrice(price float64, precision int) string {
	return c.formatter.Format(price, false, precision)
}

// Summary gathers every value of the widget. Each value is computed independently,
// so a cart that changes mid-call may yield values from different snapshots.
func (c *ProgressCalculator) Summary(ctx context.Context) (*models.ProgressSummary, error) {
	summary := &models.ProgressSummary{Enabled: c.IsEnabled(ctx)}
	if !summary.Enabled {
		return summary, nil
	}

	var err error
	summary.MinValue = c.FreeShippingMinValue(ctx)
	if summary.CurrentTotal, err = c.CurrentTotal(ctx); err != nil {
		return nil, err
	}
	if summary.Eligible, err = c.IsFreeShippingEligible(ctx); err != nil {
		return nil, err
	}
	if summary.Difference, err = c.FreeShippingDifference(ctx); err != nil {
		return nil, err
	}
	if summary.CompletionPercent, err = c.FreeShippingCompletionPercent(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *ProgressCalculator) useMethodConfig(ctx context.Context) bool {
	return toBool(c.config.GetValue(ctx, PathUseMethodConfig))
}

func (c *ProgressCalculator) carrierActive(ctx context.Context) bool {
	return toBool(c.config.GetValue(ctx, PathFreeShippingActive))
}
