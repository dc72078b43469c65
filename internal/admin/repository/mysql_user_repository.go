package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	adminDomain "github.com/nexusai/backoffice/internal/admin/domain"
	"github.com/nexusai/backoffice/internal/database"
	apperrors "github.com/nexusai/backoffice/internal/errors"
)

// MySQLUserRepository implements User persistence for MySQL.
// Uses BINARY(16) for UUID storage.
type MySQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new User into the MySQL database.
func (m *MySQLUserRepository) Create(ctx context.Context, user *adminDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO users (id, username, password, is_admin, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		user.Username,
		user.Password,
		user.IsAdmin,
		user.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a User by ID from the MySQL database.
func (m *MySQLUserRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*adminDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT id, username, password, is_admin, created_at FROM users WHERE id = ?`

	return m.scanUser(querier.QueryRowContext(ctx, query, idBytes))
}

// GetByUsername retrieves a User by username from the MySQL database.
func (m *MySQLUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*adminDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, password, is_admin, created_at FROM users WHERE username = ?`

	return m.scanUser(querier.QueryRowContext(ctx, query, username))
}

func (m *MySQLUserRepository) scanUser(row *sql.Row) (*adminDomain.User, error) {
	var user adminDomain.User
	var idBytes []byte

	err := row.Scan(
		&idBytes,
		&user.Username,
		&user.Password,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, adminDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	return &user, nil
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}
