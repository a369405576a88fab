package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
)

// PostgresQuoteRepository reads quotes from the quotes table.
type PostgresQuoteRepository struct {
	db     *sql.DB
	logger *logging.LoggerV2
}

// NewPostgresQuoteRepository creates a new PostgreSQL quote repository.
func NewPostgresQuoteRepository(db *sql.DB, logger *logging.LoggerV2) *PostgresQuoteRepository {
	return &PostgresQuoteRepository{
		db:     db,
		logger: logger,
	}
}

const selectActiveQuote = `SELECT id, session_id, store_id, currency, items_count, subtotal_with_discount, updated_at ` +
	`FROM quotes WHERE session_id = $1 AND is_active = TRUE ORDER BY updated_at DESC LIMIT 1`

// GetActiveBySession returns the newest active quote for a session.
func (r *PostgresQuoteRepository) GetActiveBySession(ctx context.Context, sessionID string) (*models.Quote, error) {
	r.logger.Debug("Fetching active quote", logging.Fields{"session_id": sessionID})

	var q models.Quote
	var subtotal sql.NullString

	err := r.db.QueryRowContext(ctx, selectActiveQuote, sessionID).Scan(
		&q.ID,
		&q.SessionID,
		&q.StoreID,
		&q.Currency,
		&q.ItemsCount,
		&subtotal,
		&q.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch quote", logging.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("query quote for session %s: %w", sessionID, err)
	}

	if !subtotal.Valid {
		return nil, fmt.Errorf("quote %s has no subtotal: %w", q.ID, apperrors.ErrConfigOrData)
	}
	q.SubtotalWithDiscount, err = decimal.NewFromString(subtotal.String)
	if err != nil {
		return nil, fmt.Errorf("quote %s subtotal %q: %w", q.ID, subtotal.String, apperrors.ErrConfigOrData)
	}
	q.IsActive = true

	return &q, nil
}
