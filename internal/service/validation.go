package service

import (
	"math"

	apperrors "github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
)

// ValidateSetConfigRequest validates an admin config write.
func ValidateSetConfigRequest(req *models.SetConfigRequest) error {
	if err := validatePath(req.Path); err != nil {
		return err
	}

	if !req.Scope.Valid() {
		return apperrors.NewValidationError("scope", "scope must be default, websites or stores")
	}

	if req.Scope == models.ScopeDefault && req.ScopeID != 0 {
		return apperrors.NewValidationError("scope_id", "default scope requires scope_id 0")
	}

	if req.Scope != models.ScopeDefault && req.ScopeID <= 0 {
		return apperrors.NewValidationError("scope_id", "scope_id must be positive")
	}

	if isAmountPath(req.Path) && req.Value != nil && math.IsInf(toFloat(*req.Value), 0) {
		return apperrors.NewValidationError("value", "value is out of range")
	}

	return nil
}

func isAmountPath(path string) bool {
	return path == PathProgressMinTotal || path == PathFreeShippingSubtotal
}

func validatePath(path string) error {
	if path == "" {
		return apperrors.NewValidationError("path", "path is required")
	}
	for _, p := range ProgressPaths {
		if p == path {
			return nil
		}
	}
	return apperrors.NewValidationError("path", "path is not managed by this service")
}
