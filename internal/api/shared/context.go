package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"github.com/stallhq/storefront-api/internal/domain"
)

// ContextKey is the key type for request context values.
type ContextKey string

// Context keys for various values
const (
	// IdentityContextKey holds the *domain.Identity resolved by the auth
	// guard.
	IdentityContextKey ContextKey = "identity"

	// AccessTokenContextKey holds the raw bearer token the caller
	// presented. Handlers need it for caller-scoped store operations and
	// for pass-through provider calls.
	AccessTokenContextKey ContextKey = "accessToken"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID.
	TraceIDLength = 16 // 32 hex characters
)

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithIdentity stores the resolved identity and its bearer token in the
// context. Set by the auth guard; read by every protected handler.
func WithIdentity(ctx context.Context, ident *domain.Identity, accessToken string) context.Context {
	ctx = context.WithValue(ctx, IdentityContextKey, ident)
	return context.WithValue(ctx, AccessTokenContextKey, accessToken)
}

// IdentityFromContext retrieves the authenticated identity, if present.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	ident, ok := ctx.Value(IdentityContextKey).(*domain.Identity)
	if !ok || ident == nil {
		return nil, false
	}
	return ident, true
}

// AccessTokenFromContext retrieves the caller's bearer token, if present.
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(AccessTokenContextKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// generateTraceID creates a random trace ID for request tracking.
// Returns a 32-character hex string.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; an empty
		// trace ID only degrades log correlation.
		slog.Error("failed to generate trace ID", "error", err)
		return ""
	}
	return hex.EncodeToString(b)
}
