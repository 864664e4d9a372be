// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// SessionContext identifies the browser session a request belongs to.
// Dashboard handoff slots are scoped to it.
type SessionContext struct {
	SessionID string
	// Issued is true when the id was generated for this request rather than sent by the client.
	Issued bool
}

type sessionContextKey struct{}

// WithSession adds SessionContext to context.
func WithSession(ctx context.Context, s *SessionContext) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// GetSession returns SessionContext from context.
func GetSession(ctx context.Context) *SessionContext {
	if v, ok := ctx.Value(sessionContextKey{}).(*SessionContext); ok {
		return v
	}
	return nil
}

// GetSessionID returns session ID from context or empty string.
func GetSessionID(ctx context.Context) string {
	if s := GetSession(ctx); s != nil {
		return s.SessionID
	}
	return ""
}
