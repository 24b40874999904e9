// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// UserContext contains authenticated user information.
// OfficeID is the caller's tenant boundary: every query must be scoped by it.
type UserContext struct {
	UserID       string
	OfficeID     string
	Email        string
	Role         string
	Capabilities []string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetOfficeID returns the caller's office ID from context or empty string.
func GetOfficeID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.OfficeID
	}
	return ""
}

// HasCapability checks if the user carries a specific capability.
func HasCapability(ctx context.Context, capability string) bool {
	u := GetUser(ctx)
	if u == nil {
		return false
	}
	for _, c := range u.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}
