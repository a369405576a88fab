package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/config"
	apperrors "github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/service"
)

// ConfigAdmin reads and writes the configuration managed by this service.
type ConfigAdmin interface {
	Rows(ctx context.Context, path string) ([]models.ConfigValue, error)
	SetValue(ctx context.Context, req *models.SetConfigRequest) (*models.ConfigValue, error)
}

// ReadinessCheck reports whether a dependency is reachable.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handlers holds all HTTP handlers for the free shipping service.
type Handlers struct {
	calculator  *service.ProgressCalculator
	configAdmin ConfigAdmin
	checks      []ReadinessCheck
	config      *config.Config
	logger      *logging.LoggerV2
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	calculator *service.ProgressCalculator,
	configAdmin ConfigAdmin,
	checks []ReadinessCheck,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		calculator:  calculator,
		configAdmin: configAdmin,
		checks:      checks,
		config:      cfg,
		logger:      logging.NewLoggerV2("handlers"),
	}
}

func handleError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrCartUnavailable):
		c.JSON(http.StatusNotFound, gin.H{"error": "cart_unavailable", "message": err.Error()})
	case apperrors.Is(err, apperrors.ErrConfigOrData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_cart_data", "message": err.Error()})
	case apperrors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		var ve *apperrors.ValidationError
		if apperrors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
