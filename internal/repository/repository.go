package repository

import (
	"context"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
)

// Ensure the implementations satisfy their interfaces.
var (
	_ ConfigRepository = (*PostgresConfigRepository)(nil)
	_ QuoteRepository  = (*PostgresQuoteRepository)(nil)
	_ ConfigCache      = (*RedisConfigCache)(nil)
	_ SessionStore     = (*RedisSessionStore)(nil)
)

// ConfigRepository persists scoped configuration rows.
type ConfigRepository interface {
	// GetByPath returns every row stored for path, across all scopes.
	GetByPath(ctx context.Context, path string) ([]models.ConfigValue, error)
	// Upsert writes a row, replacing the value stored for the same scope, scope ID and path.
	Upsert(ctx context.Context, req *models.SetConfigRequest) (*models.ConfigValue, error)
	Ping(ctx context.Context) error
}

// ConfigCache caches the rows of a path.
type ConfigCache interface {
	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context, path string) ([]models.ConfigValue, error)
	Set(ctx context.Context, path string, values []models.ConfigValue) error
	Delete(ctx context.Context, path string) error
}

// QuoteRepository reads persisted quotes.
type QuoteRepository interface {
	// GetActiveBySession returns the newest active quote, or errors.ErrNotFound.
	GetActiveBySession(ctx context.Context, sessionID string) (*models.Quote, error)
}

// SessionStore reads quotes from session storage.
type SessionStore interface {
	// GetQuote returns (nil, nil) when the session holds no quote.
	GetQuote(ctx context.Context, sessionID string) (*models.Quote, error)
}
