package http

import (
	"context"
	"fmt"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/security"
)

type contextKey string

const (
	userContextKey   contextKey = "user"
	claimsContextKey contextKey = "claims"
)

// UserFromContext returns the authenticated user stored by the auth
// middleware.
func UserFromContext(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("no authenticated user in request context: %w", domain.ErrUnauthenticated)
	}
	return user, nil
}

// ClaimsFromContext returns the validated token claims stored by the auth
// middleware.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*security.UserClaims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("no token claims in request context: %w", domain.ErrUnauthenticated)
	}
	return claims, nil
}

// ActorFromContext resolves the authenticated user into an Actor; users
// without an assigned role are rejected.
func ActorFromContext(ctx context.Context) (domain.Actor, error) {
	user, err := UserFromContext(ctx)
	if err != nil {
		return domain.Actor{}, err
	}
	return user.Actor()
}
