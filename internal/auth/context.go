package auth

import (
	"context"

	"toolboard/internal/models"
)

type ctxKey string

const userKey ctxKey = "principal"

// Claims is the authenticated principal attached to a request context.
type Claims struct {
	Subject string
	Role    models.Role
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, userKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(userKey).(Claims); ok {
		return v
	}
	return Claims{}
}

// Subject returns the authenticated user id, or "" if unauthenticated.
func Subject(ctx context.Context) string {
	return FromContext(ctx).Subject
}
