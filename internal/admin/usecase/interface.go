// Package usecase implements admin authentication: login sessions and the
// password re-verification primitive used by sensitive mutations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexusai/backoffice/internal/admin/domain"
)

// UseCase defines the admin authentication operations.
type UseCase interface {
	// Login verifies the username/password pair and creates a session.
	// Returns the plain session token for the client to hold.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)

	// Logout deletes the session for the given plain token. Idempotent.
	Logout(ctx context.Context, plainToken string) error

	// Authenticate resolves a plain session token to its user. Unknown and
	// expired tokens both yield domain.ErrSessionInvalid.
	Authenticate(ctx context.Context, plainToken string) (*domain.User, error)

	// VerifyPassword checks a plaintext password against the stored hash for
	// the given user. This is the re-authentication primitive used by the
	// credential save endpoint.
	VerifyPassword(ctx context.Context, userID uuid.UUID, password string) (bool, error)

	// CreateUser registers a new back-office account.
	CreateUser(ctx context.Context, username, password string, isAdmin bool) (*domain.User, error)
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// SessionRepository defines session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
