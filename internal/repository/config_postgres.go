package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
)

// PostgresConfigRepository implements ConfigRepository on the core_config_data table.
type PostgresConfigRepository struct {
	db     *sql.DB
	logger *logging.LoggerV2
}

// NewPostgresConfigRepository creates a new PostgreSQL config repository.
func NewPostgresConfigRepository(db *sql.DB, logger *logging.LoggerV2) *PostgresConfigRepository {
	return &PostgresConfigRepository{
		db:     db,
		logger: logger,
	}
}

const selectConfigByPath = `SELECT config_id, scope, scope_id, path, value, updated_at FROM core_config_data WHERE path = $1 ORDER BY config_id`

const upsertConfig = `INSERT INTO core_config_data (scope, scope_id, path, value, updated_at) VALUES ($1, $2, $3, $4, NOW()) ` +
	`ON CONFLICT (scope, scope_id, path) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at ` +
	`RETURNING config_id, updated_at`

// GetByPath returns every row stored for path.
func (r *PostgresConfigRepository) GetByPath(ctx context.Context, path string) ([]models.ConfigValue, error) {
	r.logger.Debug("Fetching config rows", logging.Fields{"path": path})

	rows, err := r.db.QueryContext(ctx, selectConfigByPath, path)
	if err != nil {
		r.logger.Error("Failed to fetch config rows", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("query config %s: %w", path, err)
	}
	defer rows.Close()

	values := make([]models.ConfigValue, 0)
	for rows.Next() {
		var v models.ConfigValue
		var scope string
		var value sql.NullString
		if err := rows.Scan(&v.ID, &scope, &v.ScopeID, &v.Path, &value, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan config %s: %w", path, err)
		}
		v.Scope = models.ScopeType(scope)
		if value.Valid {
			s := value.String
			v.Value = &s
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config %s: %w", path, err)
	}

	return values, nil
}

// Upsert writes a configuration row.
func (r *PostgresConfigRepository) Upsert(ctx context.Context, req *models.SetConfigRequest) (*models.ConfigValue, error) {
	var value sql.NullString
	if req.Value != nil {
		value = sql.NullString{String: *req.Value, Valid: true}
	}

	v := &models.ConfigValue{
		Scope:   req.Scope,
		ScopeID: req.ScopeID,
		Path:    req.Path,
		Value:   req.Value,
	}

	err := r.db.QueryRowContext(ctx, upsertConfig, string(req.Scope), req.ScopeID, req.Path, value).
		Scan(&v.ID, &v.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to write config", logging.Fields{
			"path":     req.Path,
			"scope":    req.Scope,
			"scope_id": req.ScopeID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("upsert config %s: %w", req.Path, err)
	}

	r.logger.Info("Config written", logging.Fields{
		"path":     req.Path,
		"scope":    req.Scope,
		"scope_id": req.ScopeID,
	})
	return v, nil
}

// Ping checks the database connection.
func (r *PostgresConfigRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
