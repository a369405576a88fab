package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/service"
)

const maxPricePrecision = 6

// ProgressResponse is the widget payload. Numeric fields are null when their raw value is not
// finite, as with a zero or overflowing configured minimum.
type ProgressResponse struct {
	Enabled           bool               `json:"enabled"`
	Eligible          bool               `json:"eligible"`
	MinValue          *float64           `json:"min_value"`
	CurrentTotal      *float64           `json:"current_total"`
	Difference        *float64           `json:"difference"`
	CompletionPercent *float64           `json:"completion_percent"`
	Formatted         *FormattedProgress `json:"formatted,omitempty"`
}

// FormattedProgress carries display strings without a currency symbol.
type FormattedProgress struct {
	MinValue     string `json:"min_value"`
	CurrentTotal string `json:"current_total"`
	Difference   string `json:"difference"`
}

// GetProgress handles GET /api/v1/cart/free-shipping-progress
func (h *Handlers) GetProgress(c *gin.Context) {
	precision, err := parsePrecision(c.Query("precision"))
	if err != nil {
		handleError(c, err)
		return
	}

	ctx := c.Request.Context()
	summary, err := h.calculator.Summary(ctx)
	if err != nil {
		h.recordFailure(err)
		h.logger.Warn("Free shipping progress unavailable", logging.Fields{"error": err.Error()})
		handleError(c, err)
		return
	}

	if !summary.Enabled {
		metrics.ProgressResults.WithLabelValues(metrics.OutcomeDisabled).Inc()
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	if summary.Eligible {
		metrics.ProgressResults.WithLabelValues(metrics.OutcomeEligible).Inc()
	} else {
		metrics.ProgressResults.WithLabelValues(metrics.OutcomeNotEligible).Inc()
	}

	resp := ProgressResponse{
		Enabled:           true,
		Eligible:          summary.Eligible,
		MinValue:          finite(summary.MinValue),
		CurrentTotal:      finite(summary.CurrentTotal),
		Difference:        finite(summary.Difference),
		CompletionPercent: finite(summary.CompletionPercent),
		Formatted: &FormattedProgress{
			MinValue:     h.calculator.FormatPrice(summary.MinValue, precision),
			CurrentTotal: h.calculator.FormatPrice(summary.CurrentTotal, precision),
			Difference:   h.calculator.FormatPrice(summary.Difference, precision),
		},
	}

	c.JSON(http.StatusOK, resp)
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func (h *Handlers) recordFailure(err error) {
	outcome := metrics.OutcomeError
	switch {
	case apperrors.Is(err, apperrors.ErrCartUnavailable):
		outcome = metrics.OutcomeCartUnavailable
	case apperrors.Is(err, apperrors.ErrConfigOrData):
		outcome = metrics.OutcomeInvalidData
	}
	metrics.ProgressResults.WithLabelValues(outcome).Inc()
}

func parsePrecision(raw string) (int, error) {
	if raw == "" {
		return service.DefaultPricePrecision, nil
	}
	p, err := strconv.Atoi(raw)
	if err != nil || p < 0 || p > maxPricePrecision {
		return 0, apperrors.NewValidationError("precision", "precision must be an integer between 0 and 6")
	}
	return p, nil
}
