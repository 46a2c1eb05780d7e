package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, username, fullname, phone, address, password_hash, role, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.Fullname, u.Phone, u.Address, u.PasswordHash, u.Role, u.CreatedAt)
	return mapError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, username, fullname, phone, address, password_hash, role, created_at FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Fullname, &u.Phone, &u.Address, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, username, fullname, phone, address, password_hash, role, created_at FROM users WHERE username = $1`
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Fullname, &u.Phone, &u.Address, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *userRepository) SetRole(ctx context.Context, id string, role domain.Role) error {
	// Conditional on the role still being unset: the set-once rule is
	// enforced by the database, not by a prior read.
	query := `UPDATE users SET role = $1 WHERE id = $2 AND role = ''`
	res, err := r.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return mapError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, id); errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("role already set for user %s: %w", id, domain.ErrInvalidState)
	}
	return nil
}
