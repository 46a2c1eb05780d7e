package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"agrirent-backend/internal/domain"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenPurpose string

const (
	// PurposeAccess is a regular session token carrying the user's role.
	PurposeAccess TokenPurpose = "access"
	// PurposeSetRole is a short-lived token issued after registration (or a
	// role-less login) that only authorizes picking a role.
	PurposeSetRole TokenPurpose = "set-role"
)

// UserClaims defines the claims carried by every token we issue
type UserClaims struct {
	UserID  string       `json:"user_id"`
	Role    domain.Role  `json:"role,omitempty"`
	Purpose TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAccessToken(userID string, role domain.Role) (string, error)
	GenerateSetRoleToken(userID string) (string, error)
	ValidateToken(tokenString string) (*UserClaims, error)
}

type tokenManager struct {
	secret        []byte
	accessExpiry  time.Duration
	setRoleExpiry time.Duration
}

func NewTokenManager(secret string, accessExpiryMinutes, setRoleExpiryMinutes int) TokenManager {
	if accessExpiryMinutes <= 0 {
		accessExpiryMinutes = 24 * 60
	}
	if setRoleExpiryMinutes <= 0 {
		setRoleExpiryMinutes = 15
	}
	return &tokenManager{
		secret:        []byte(secret),
		accessExpiry:  time.Duration(accessExpiryMinutes) * time.Minute,
		setRoleExpiry: time.Duration(setRoleExpiryMinutes) * time.Minute,
	}
}

func (m *tokenManager) GenerateAccessToken(userID string, role domain.Role) (string, error) {
	return m.sign(UserClaims{
		UserID:  userID,
		Role:    role,
		Purpose: PurposeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "agrirent-backend",
		},
	})
}

func (m *tokenManager) GenerateSetRoleToken(userID string) (string, error) {
	return m.sign(UserClaims{
		UserID:  userID,
		Purpose: PurposeSetRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.setRoleExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "agrirent-backend",
		},
	})
}

func (m *tokenManager) sign(claims UserClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
