package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"agrirent-backend/internal/domain"
)

var userColumns = []string{"id", "username", "fullname", "phone", "address", "password_hash", "role", "created_at"}

func TestUserCreate(t *testing.T) {
	t.Run("inserts a new user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		u := &domain.User{ID: "user-1", Username: "farmer_joe", Fullname: "Joe Miller",
			Phone: "555-0100", Address: "12 Orchard Lane", PasswordHash: "hash",
			Role: domain.RoleUnset, CreatedAt: time.Now().UTC()}

		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(u.ID, u.Username, u.Fullname, u.Phone, u.Address, u.PasswordHash, u.Role, u.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), u))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username maps to conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

		err = repo.Create(context.Background(), &domain.User{ID: "user-1", Username: "farmer_joe"})

		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestUserGetByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)
		now := time.Now().UTC()

		mock.ExpectQuery(`FROM users WHERE username = \$1`).
			WithArgs("farmer_joe").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("user-1", "farmer_joe", "Joe Miller", "555-0100", "12 Orchard Lane", "hash", "owner", now))

		u, err := repo.GetByUsername(context.Background(), "farmer_joe")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
		assert.Equal(t, domain.RoleOwner, u.Role)
	})

	t.Run("missing maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		mock.ExpectQuery(`FROM users WHERE username = \$1`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err = repo.GetByUsername(context.Background(), "ghost")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserSetRole(t *testing.T) {
	t.Run("assigns role while unset", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		mock.ExpectExec(`UPDATE users SET role = \$1 WHERE id = \$2 AND role = ''`).
			WithArgs(domain.RoleRenter, "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetRole(context.Background(), "user-1", domain.RoleRenter))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already assigned is invalid state", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)
		now := time.Now().UTC()

		mock.ExpectExec(`UPDATE users SET role = \$1 WHERE id = \$2 AND role = ''`).
			WithArgs(domain.RoleRenter, "user-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("user-1", "farmer_joe", "Joe Miller", "555-0100", "12 Orchard Lane", "hash", "owner", now))

		err = repo.SetRole(context.Background(), "user-1", domain.RoleRenter)

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		mock.ExpectExec(`UPDATE users SET role = \$1 WHERE id = \$2 AND role = ''`).
			WithArgs(domain.RoleRenter, "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(userColumns))

		err = repo.SetRole(context.Background(), "ghost", domain.RoleRenter)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
