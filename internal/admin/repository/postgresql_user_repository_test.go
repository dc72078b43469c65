package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminDomain "github.com/nexusai/backoffice/internal/admin/domain"
)

func newTestUser() *adminDomain.User {
	return &adminDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  "admin",
		Password:  "$argon2id$v=19$m=65536,t=3,p=4$hash",
		IsAdmin:   true,
		CreatedAt: time.Now().UTC(),
	}
}

func userRows(user *adminDomain.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password", "is_admin", "created_at"}).
		AddRow(user.ID.String(), user.Username, user.Password, user.IsAdmin, user.CreatedAt)
}

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_InsertsUser", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		user := newTestUser()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
			WithArgs(user.ID, user.Username, user.Password, user.IsAdmin, user.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLUserRepository(db)
		require.NoError(t, repo.Create(ctx, user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_InsertFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		user := newTestUser()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnError(errors.New("duplicate key value"))

		repo := NewPostgreSQLUserRepository(db)
		assert.Error(t, repo.Create(ctx, user))
	})
}

func TestPostgreSQLUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReturnsUser", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		user := newTestUser()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password, is_admin, created_at FROM users WHERE id = $1`)).
			WithArgs(user.ID).
			WillReturnRows(userRows(user))

		repo := NewPostgreSQLUserRepository(db)
		got, err := repo.GetByID(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Username, got.Username)
		assert.True(t, got.IsAdmin)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password, is_admin, created_at FROM users WHERE id = $1`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "is_admin", "created_at"}))

		repo := NewPostgreSQLUserRepository(db)
		_, err = repo.GetByID(ctx, id)

		assert.ErrorIs(t, err, adminDomain.ErrUserNotFound)
	})
}

func TestPostgreSQLUserRepository_GetByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReturnsUser", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		user := newTestUser()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password, is_admin, created_at FROM users WHERE username = $1`)).
			WithArgs(user.Username).
			WillReturnRows(userRows(user))

		repo := NewPostgreSQLUserRepository(db)
		got, err := repo.GetByUsername(ctx, "admin")

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password, is_admin, created_at FROM users WHERE username = $1`)).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "is_admin", "created_at"}))

		repo := NewPostgreSQLUserRepository(db)
		_, err = repo.GetByUsername(ctx, "ghost")

		assert.ErrorIs(t, err, adminDomain.ErrUserNotFound)
	})
}
