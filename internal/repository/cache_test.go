package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/errors"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "config:carriers/freeshipping/active", ConfigCacheKey("carriers/freeshipping/active"))
	assert.Equal(t, "quote:session:sess_1", SessionQuoteKey("sess_1"))
}

func TestDecodeSessionQuote(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"string subtotal", `{"id":"q_1","session_id":"sess_1","subtotal_with_discount":"80.00"}`, "80"},
		{"numeric subtotal", `{"id":"q_1","subtotal_with_discount":12.34}`, "12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := DecodeSessionQuote([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, "q_1", q.ID)
			assert.Equal(t, tt.want, q.SubtotalWithDiscount.String())
		})
	}
}

func TestDecodeSessionQuote_Malformed(t *testing.T) {
	payloads := []string{
		`not json`,
		`{"id":"q_1"}`,
		`{"id":"q_1","subtotal_with_discount":null}`,
		`{"id":"q_1","subtotal_with_discount":"abc"}`,
		`{"id":"q_1","subtotal_with_discount":""}`,
	}

	for _, p := range payloads {
		_, err := DecodeSessionQuote([]byte(p))
		assert.ErrorIs(t, err, apperrors.ErrConfigOrData, p)
	}
}

func TestRedisConfigCache_Integration(t *testing.T) {
	t.Skip("Integration test - requires Redis")
}
