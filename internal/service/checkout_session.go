package service

import (
	"context"
	"fmt"

	apperrors "github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/repository"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/reqctx"
)

var _ CartProvider = (*CheckoutSession)(nil)

// CheckoutSession finds the active quote of the session in ctx. Session storage is read first,
// then the quotes table. An inactive quote in session storage counts as a miss. Nothing is memoized.
type CheckoutSession struct {
	sessions repository.SessionStore
	quotes   repository.QuoteRepository
	logger   *logging.LoggerV2
}

// NewCheckoutSession creates a cart provider. sessions may be nil.
func NewCheckoutSession(sessions repository.SessionStore, quotes repository.QuoteRepository) *CheckoutSession {
	return &CheckoutSession{
		sessions: sessions,
		quotes:   quotes,
		logger:   logging.NewLoggerV2("checkout-session"),
	}
}

// GetActiveCart returns the session's active quote.
func (s *CheckoutSession) GetActiveCart(ctx context.Context) (*models.Quote, error) {
	sessionID := reqctx.SessionID(ctx)
	if sessionID == "" {
		return nil, apperrors.ErrCartUnavailable
	}

	if s.sessions != nil {
		quote, err := s.sessions.GetQuote(ctx, sessionID)
		switch {
		case err == nil && quote != nil && quote.IsActive:
			return quote, nil
		case err == nil && quote != nil:
			s.logger.Debug("Session quote is inactive, reading quotes table", logging.Fields{
				"session_id": sessionID,
				"quote_id":   quote.ID,
			})
		case apperrors.Is(err, apperrors.ErrConfigOrData):
			return nil, err
		case err != nil:
			s.logger.Warn("Session storage unavailable, reading quotes table", logging.Fields{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}

	quote, err := s.quotes.GetActiveBySession(ctx, sessionID)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrCartUnavailable)
	}
	if err != nil {
		return nil, err
	}
	return quote, nil
}
