package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository"
	"agrirent-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" || in.Fullname == "" || in.Phone == "" || in.Address == "" {
		return nil, "", fmt.Errorf("username, password, fullname, phone and address are required: %w", domain.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Fullname:     in.Fullname,
		Phone:        in.Phone,
		Address:      in.Address,
		PasswordHash: string(hash),
		Role:         domain.RoleUnset,
		CreatedAt:    time.Now().UTC(),
	}

	// Username uniqueness rides on the database constraint; a duplicate
	// surfaces as Conflict.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateSetRoleToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid username or password: %w", domain.ErrUnauthenticated)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid username or password: %w", domain.ErrUnauthenticated)
	}

	if user.Role == domain.RoleUnset {
		token, err := s.tokens.GenerateSetRoleToken(user.ID)
		if err != nil {
			return nil, err
		}
		return &LoginResult{Token: token, RoleNeeded: true, Username: user.Username}, nil
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: user.Role, Username: user.Username}, nil
}

func (s *authService) SetRole(ctx context.Context, userID, username string, role domain.Role) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	// Users may only set their own role.
	if user.Username != username {
		return "", fmt.Errorf("cannot set another user's role: %w", domain.ErrForbidden)
	}

	// The repository refuses the update when the role is already assigned,
	// so two concurrent attempts cannot both win.
	if err := s.userRepo.SetRole(ctx, userID, role); err != nil {
		return "", err
	}

	logger.Info("user role assigned", "user_id", userID, "role", role)
	return s.tokens.GenerateAccessToken(userID, role)
}

func (s *authService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
