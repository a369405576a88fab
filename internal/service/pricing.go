package service

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
)

// PriceFormatter formats amounts in the store's currency and locale.
type PriceFormatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewPriceFormatter creates a formatter for the configured currency. Unknown currency codes
// fall back to USD and malformed locales to English.
func NewPriceFormatter(cfg config.CurrencyConfig) *PriceFormatter {
	unit, err := currency.ParseISO(cfg.Code)
	if err != nil {
		logging.Error("Unknown currency code, using USD", logging.Fields{
			"currency": cfg.Code,
			"error":    err.Error(),
		})
		unit = currency.USD
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		logging.Error("Unknown locale, using en", logging.Fields{
			"locale": cfg.Locale,
			"error":  err.Error(),
		})
		tag = language.English
	}

	return &PriceFormatter{
		unit:    unit,
		printer: message.NewPrinter(tag),
	}
}

// Format renders amount with exactly precision fraction digits, rounding half away from zero.
// Non-finite amounts render as "+Inf", "-Inf" or "NaN".
func (f *PriceFormatter) Format(amount float64, includeSymbol bool, precision int) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	if precision < 0 {
		precision = 0
	}

	rounded := RoundPrice(amount, precision)
	out := f.printer.Sprint(number.Decimal(rounded, number.Scale(precision)))
	if includeSymbol {
		out = f.printer.Sprint(currency.Symbol(f.unit)) + out
	}
	return out
}

// RoundPrice rounds amount to precision digits, half away from zero. amount must be finite.
func RoundPrice(amount float64, precision int) float64 {
	return decimal.NewFromFloat(amount).Round(int32(precision)).InexactFloat64()
}
