package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
	"agrirent-backend/internal/security"
)

// AuthMiddleware validates bearer tokens and loads the authenticated user
// into the request context.
type AuthMiddleware struct {
	tokens security.TokenManager
	users  repository.UserRepository
}

func NewAuthMiddleware(tokens security.TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			respondError(w, err)
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			respondError(w, fmt.Errorf("%v: %w", err, domain.ErrUnauthenticated))
			return
		}

		// Role comes from the user record, not the token, so a role change
		// after issuance is picked up immediately.
		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, fmt.Errorf("token user not found: %w", domain.ErrUnauthenticated))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		ctx = context.WithValue(ctx, claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		// The legacy client sends the token in x-access-token.
		if token := r.Header.Get("x-access-token"); token != "" {
			return token, nil
		}
		return "", fmt.Errorf("authorization token is missing: %w", domain.ErrUnauthenticated)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("malformed authorization header: %w", domain.ErrUnauthenticated)
	}
	return parts[1], nil
}
