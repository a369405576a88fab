package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the active shopping cart of a checkout session.
type Quote struct {
	ID                   string          `json:"id"`
	SessionID            string          `json:"session_id"`
	StoreID              int64           `json:"store_id"`
	Currency             string          `json:"currency"`
	ItemsCount           int             `json:"items_count"`
	SubtotalWithDiscount decimal.Decimal `json:"subtotal_with_discount"`
	IsActive             bool            `json:"is_active"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
