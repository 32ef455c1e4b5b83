// Package utils provides general-purpose helper utilities used across the
// application: typed context keys, session token signing and parsing,
// keyed hashing, JSON responses, the outbound HTTP client and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-task-manager/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the authenticated user's id is stored.
var UserIDCtxKey = contextKey("userID")

// SessionTokenCtxKey is the key under which the exact bearer token that
// authenticated the request is stored. Logout revokes precisely this token.
var SessionTokenCtxKey = contextKey("sessionToken")

// WithSession returns a copy of ctx carrying the resolved session.
func WithSession(ctx context.Context, session models.Session) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, session.UserID)
	return context.WithValue(ctx, SessionTokenCtxKey, session.Token)
}

// GetUserIDFromContext retrieves the user identifier from the context.
//
// ok is false when the value is missing or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetSessionFromContext retrieves the resolved session from the context.
func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return models.Session{}, false
	}

	token, ok := ctx.Value(SessionTokenCtxKey).(string)
	if !ok || token == "" {
		return models.Session{}, false
	}

	return models.Session{UserID: userID, Token: token}, true
}
