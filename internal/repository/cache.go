package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/config"
	apperrors "github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
)

const (
	configKeyPrefix       = "config:"
	sessionQuoteKeyPrefix = "quote:session:"
	defaultConfigTTL      = 10 * time.Minute
)

// NewRedisClient creates the shared Redis client.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// ConfigCacheKey returns the Redis key holding the rows of path.
func ConfigCacheKey(path string) string {
	return configKeyPrefix + path
}

// SessionQuoteKey returns the Redis key holding a session's quote.
func SessionQuoteKey(sessionID string) string {
	return sessionQuoteKeyPrefix + sessionID
}

// RedisConfigCache implements ConfigCache using Redis.
type RedisConfigCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *logging.LoggerV2
}

// NewRedisConfigCache creates a new Redis-based config cache.
func NewRedisConfigCache(client redis.Cmdable, ttl time.Duration) *RedisConfigCache {
	if ttl == 0 {
		ttl = defaultConfigTTL
	}

	return &RedisConfigCache{
		client: client,
		ttl:    ttl,
		logger: logging.NewLoggerV2("config-cache"),
	}
}

// Get retrieves the cached rows of path.
func (c *RedisConfigCache) Get(ctx context.Context, path string) ([]models.ConfigValue, error) {
	data, err := c.client.Get(ctx, ConfigCacheKey(path)).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", logging.Fields{"path": path})
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Cache get error", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return nil, err
	}

	var values []models.ConfigValue
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}

	c.logger.Debug("Cache hit", logging.Fields{"path": path})
	return values, nil
}

// Set stores the rows of path. An empty slice is cached too, so unset paths do not hit the database.
func (c *RedisConfigCache) Set(ctx context.Context, path string, values []models.ConfigValue) error {
	if values == nil {
		values = []models.ConfigValue{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, ConfigCacheKey(path), data, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Delete drops the cached rows of path.
func (c *RedisConfigCache) Delete(ctx context.Context, path string) error {
	if err := c.client.Del(ctx, ConfigCacheKey(path)).Err(); err != nil {
		c.logger.Error("Cache delete error", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return err
	}

	c.logger.Debug("Config evicted from cache", logging.Fields{"path": path})
	return nil
}

// RedisSessionStore reads quotes the cart service keeps in session storage. It never writes.
type RedisSessionStore struct {
	client redis.Cmdable
	logger *logging.LoggerV2
}

// NewRedisSessionStore creates a new session store reader.
func NewRedisSessionStore(client redis.Cmdable) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		logger: logging.NewLoggerV2("session-store"),
	}
}

// GetQuote returns the quote stored for sessionID.
func (s *RedisSessionStore) GetQuote(ctx context.Context, sessionID string) (*models.Quote, error) {
	data, err := s.client.Get(ctx, SessionQuoteKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return DecodeSessionQuote(data)
}

// DecodeSessionQuote parses a session quote payload. Any payload that does not carry a readable
// subtotal is reported as ErrConfigOrData.
func DecodeSessionQuote(data []byte) (*models.Quote, error) {
	var raw struct {
		models.Quote
		SubtotalWithDiscount *json.RawMessage `json:"subtotal_with_discount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode session quote: %v: %w", err, apperrors.ErrConfigOrData)
	}
	if raw.SubtotalWithDiscount == nil || string(*raw.SubtotalWithDiscount) == "null" {
		return nil, fmt.Errorf("session quote %s has no subtotal: %w", raw.ID, apperrors.ErrConfigOrData)
	}

	q := raw.Quote
	if err := q.SubtotalWithDiscount.UnmarshalJSON(*raw.SubtotalWithDiscount); err != nil {
		return nil, fmt.Errorf("session quote %s subtotal: %v: %w", raw.ID, err, apperrors.ErrConfigOrData)
	}
	return &q, nil
}
