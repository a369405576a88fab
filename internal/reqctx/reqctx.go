// Package reqctx carries request-scoped values through context.Context.
package reqctx

import (
	"context"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
)

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	scopeKey     contextKey = "scope"
	requestIDKey contextKey = "request_id"
)

// WithSessionID returns a context carrying the checkout session ID.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionID returns the checkout session ID, or "" when none was set.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// WithScope returns a context carrying the store scope.
func WithScope(ctx context.Context, scope models.Scope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

// ScopeFrom returns the store scope. Requests without one resolve against the default scope only.
func ScopeFrom(ctx context.Context) models.Scope {
	s, _ := ctx.Value(scopeKey).(models.Scope)
	return s
}

// WithRequestID returns a context carrying the request correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request correlation ID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
