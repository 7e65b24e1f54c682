// Package trace carries request IDs through context for outbound header
// propagation.
package trace

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is the type for context keys to avoid collisions
type contextKey string

const (
	// idKey is the context key for request ID values
	idKey contextKey = "request_id"
	// HeaderXRequestID is the standard header name for request tracing
	HeaderXRequestID = "X-Request-ID"
)

// WithID adds a request ID to the context
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// IDFromContext returns a request ID from context if present
func IDFromContext(ctx context.Context) (string, bool) {
	if id, ok := ctx.Value(idKey).(string); ok && id != "" {
		return id, true
	}
	return "", false
}

// EnsureID returns an existing request ID from context or generates a new one
func EnsureID(ctx context.Context) string {
	if id, ok := IDFromContext(ctx); ok {
		return id
	}
	return uuid.New().String()
}
