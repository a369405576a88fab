package service

import (
	"context"
	"fmt"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/repository"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/reqctx"
)

var _ ConfigProvider = (*ScopeConfig)(nil)

// ConfigEventPublisher announces configuration writes to other instances.
type ConfigEventPublisher interface {
	PublishConfigChanged(ctx context.Context, value *models.ConfigValue) error
}

// ScopeConfig resolves configuration values for the request's store scope.
type ScopeConfig struct {
	repo      repository.ConfigRepository
	cache     repository.ConfigCache
	publisher ConfigEventPublisher
	logger    *logging.LoggerV2
}

// NewScopeConfig creates a scoped config provider. cache and publisher may be nil.
func NewScopeConfig(repo repository.ConfigRepository, cache repository.ConfigCache, publisher ConfigEventPublisher) *ScopeConfig {
	return &ScopeConfig{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    logging.NewLoggerV2("scope-config"),
	}
}

// GetValue returns the value of path for the scope in ctx, or nil when it is unset.
// Storage failures are logged and reported as unset.
func (s *ScopeConfig) GetValue(ctx context.Context, path string) interface{} {
	rows, err := s.rows(ctx, path)
	if err != nil {
		s.logger.Error("Config lookup failed, treating as unset", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return nil
	}

	v, ok := ResolveScope(rows, reqctx.ScopeFrom(ctx))
	if !ok || v.Value == nil {
		return nil
	}
	return *v.Value
}

// ResolveScope picks the row that applies to scope: store, then website, then default.
func ResolveScope(rows []models.ConfigValue, scope models.Scope) (models.ConfigValue, bool) {
	var website, def *models.ConfigValue
	for i := range rows {
		r := &rows[i]
		switch r.Scope {
		case models.ScopeStores:
			if scope.StoreID != 0 && r.ScopeID == scope.StoreID {
				return *r, true
			}
		case models.ScopeWebsites:
			if scope.WebsiteID != 0 && r.ScopeID == scope.WebsiteID {
				website = r
			}
		case models.ScopeDefault:
			def = r
		}
	}

	if website != nil {
		return *website, true
	}
	if def != nil {
		return *def, true
	}
	return models.ConfigValue{}, false
}

func (s *ScopeConfig) rows(ctx context.Context, path string) ([]models.ConfigValue, error) {
	if s.cache != nil {
		rows, err := s.cache.Get(ctx, path)
		if err == nil && rows != nil {
			metrics.ConfigCacheLookups.WithLabelValues("hit").Inc()
			return rows, nil
		}
		metrics.ConfigCacheLookups.WithLabelValues("miss").Inc()
	}

	rows, err := s.repo.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, path, rows); err != nil {
			s.logger.Warn("Failed to cache config", logging.Fields{"path": path, "error": err.Error()})
		}
	}
	return rows, nil
}

// Rows returns the stored rows of path across all scopes.
func (s *ScopeConfig) Rows(ctx context.Context, path string) ([]models.ConfigValue, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	return s.repo.GetByPath(ctx, path)
}

// SetValue writes a configuration value, evicts it from the cache and announces the change.
func (s *ScopeConfig) SetValue(ctx context.Context, req *models.SetConfigRequest) (*models.ConfigValue, error) {
	if err := ValidateSetConfigRequest(req); err != nil {
		return nil, err
	}

	value, err := s.repo.Upsert(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("set config: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, req.Path); err != nil {
			s.logger.Warn("Failed to evict config", logging.Fields{"path": req.Path, "error": err.Error()})
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishConfigChanged(ctx, value); err != nil {
			// other instances pick the value up when their cache entry expires
			s.logger.Error("Failed to publish config change", logging.Fields{
				"path":  req.Path,
				"error": err.Error(),
			})
		}
	}

	return value, nil
}

// Invalidate drops a path from the cache.
func (s *ScopeConfig) Invalidate(ctx context.Context, path string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, path)
}
