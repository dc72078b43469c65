package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/backoffice/internal/admin/domain"
	"github.com/nexusai/backoffice/internal/admin/service"
	apperrors "github.com/nexusai/backoffice/internal/errors"
)

// mockUserRepository is a mock implementation of UserRepository.
type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// mockSessionRepository is a mock implementation of SessionRepository.
type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *mockSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// hashPassword hashes a plaintext password the same way the use case does.
func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	require.NoError(t, err)

	hash, err := hasher.Hash([]byte(password))
	require.NoError(t, err)
	return hash
}

func newTestUseCase(t *testing.T, userRepo UserRepository, sessionRepo SessionRepository) *AdminUseCase {
	t.Helper()

	uc, err := NewAdminUseCase(userRepo, sessionRepo, service.NewSessionTokenService(), time.Hour)
	require.NoError(t, err)
	return uc
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()

	return &domain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  "admin",
		Password:  hashPassword(t, password),
		IsAdmin:   true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestAdminUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ValidCredentials", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}
		user := testUser(t, "correct-horse")

		userRepo.On("GetByUsername", ctx, "admin").Return(user, nil).Once()
		sessionRepo.On("Create", ctx, mock.MatchedBy(func(s *domain.Session) bool {
			return s.UserID == user.ID &&
				s.TokenHash != "" &&
				s.ExpiresAt.After(time.Now().UTC().Add(59*time.Minute))
		})).Return(nil).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		token, loggedIn, err := uc.Login(ctx, "admin", "correct-horse")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, loggedIn.ID)
		userRepo.AssertExpectations(t)
		sessionRepo.AssertExpectations(t)
	})

	t.Run("Success_UsernameIsTrimmed", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}
		user := testUser(t, "correct-horse")

		userRepo.On("GetByUsername", ctx, "admin").Return(user, nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		_, _, err := uc.Login(ctx, "  admin  ", "correct-horse")

		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Error_UnknownUsername", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}

		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrUserNotFound).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		_, _, err := uc.Login(ctx, "ghost", "whatever")

		assert.ErrorIs(t, err, domain.ErrInvalidLogin)
		sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}
		user := testUser(t, "correct-horse")

		userRepo.On("GetByUsername", ctx, "admin").Return(user, nil).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		_, _, err := uc.Login(ctx, "admin", "wrong-password")

		assert.ErrorIs(t, err, domain.ErrInvalidLogin)
		sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAdminUseCase_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DeletesSession", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}

		sessionRepo.On("DeleteByTokenHash", ctx, mock.AnythingOfType("string")).Return(nil).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		assert.NoError(t, uc.Logout(ctx, "some-token"))
		sessionRepo.AssertExpectations(t)
	})

	t.Run("Success_UnknownTokenIsIdempotent", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}

		sessionRepo.On("DeleteByTokenHash", ctx, mock.AnythingOfType("string")).
			Return(apperrors.ErrNotFound).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		assert.NoError(t, uc.Logout(ctx, "unknown-token"))
	})
}

func TestAdminUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	tokenService := service.NewSessionTokenService()

	t.Run("Success_ValidSession", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}
		user := testUser(t, "correct-horse")

		plainToken := "valid-token"
		session := &domain.Session{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    user.ID,
			TokenHash: tokenService.HashToken(plainToken),
			ExpiresAt: time.Now().UTC().Add(time.Hour),
			CreatedAt: time.Now().UTC(),
		}

		sessionRepo.On("GetByTokenHash", ctx, session.TokenHash).Return(session, nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		got, err := uc.Authenticate(ctx, plainToken)

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("Error_UnknownToken", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}

		sessionRepo.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).
			Return(nil, apperrors.ErrNotFound).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		_, err := uc.Authenticate(ctx, "unknown-token")

		assert.ErrorIs(t, err, domain.ErrSessionInvalid)
	})

	t.Run("Error_ExpiredSessionIsDeleted", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}
		user := testUser(t, "correct-horse")

		plainToken := "expired-token"
		session := &domain.Session{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    user.ID,
			TokenHash: tokenService.HashToken(plainToken),
			ExpiresAt: time.Now().UTC().Add(-time.Minute),
			CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		}

		sessionRepo.On("GetByTokenHash", ctx, session.TokenHash).Return(session, nil).Once()
		sessionRepo.On("DeleteByTokenHash", ctx, session.TokenHash).Return(nil).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		_, err := uc.Authenticate(ctx, plainToken)

		assert.ErrorIs(t, err, domain.ErrSessionInvalid)
		sessionRepo.AssertExpectations(t)
		userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Error_UserDeletedAfterSessionCreated", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}

		plainToken := "orphan-token"
		session := &domain.Session{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    uuid.Must(uuid.NewV7()),
			TokenHash: tokenService.HashToken(plainToken),
			ExpiresAt: time.Now().UTC().Add(time.Hour),
			CreatedAt: time.Now().UTC(),
		}

		sessionRepo.On("GetByTokenHash", ctx, session.TokenHash).Return(session, nil).Once()
		userRepo.On("GetByID", ctx, session.UserID).Return(nil, domain.ErrUserNotFound).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		_, err := uc.Authenticate(ctx, plainToken)

		assert.ErrorIs(t, err, domain.ErrSessionInvalid)
	})
}

func TestAdminUseCase_VerifyPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CorrectPassword", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}
		user := testUser(t, "correct-horse")

		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		ok, err := uc.VerifyPassword(ctx, user.ID, "correct-horse")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Success_WrongPasswordIsNotAnError", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}
		user := testUser(t, "correct-horse")

		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		ok, err := uc.VerifyPassword(ctx, user.ID, "wrong-password")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Error_UnknownUser", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}
		id := uuid.Must(uuid.NewV7())

		userRepo.On("GetByID", ctx, id).Return(nil, domain.ErrUserNotFound).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		_, err := uc.VerifyPassword(ctx, id, "whatever")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestAdminUseCase_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreatesUserWithHashedPassword", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		sessionRepo := &mockSessionRepository{}

		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "operator" &&
				u.IsAdmin &&
				u.Password != "" &&
				u.Password != "long-enough-password"
		})).Return(nil).Once()

		uc := newTestUseCase(t, userRepo, sessionRepo)
		user, err := uc.CreateUser(ctx, "operator", "long-enough-password", true)

		require.NoError(t, err)
		assert.Equal(t, "operator", user.Username)
		assert.NotEqual(t, uuid.Nil, user.ID)
		userRepo.AssertExpectations(t)
	})

	t.Run("Error_UsernameTooShort", func(t *testing.T) {
		uc := newTestUseCase(t, &mockUserRepository{}, &mockSessionRepository{})

		_, err := uc.CreateUser(ctx, "ab", "long-enough-password", false)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_PasswordTooShort", func(t *testing.T) {
		uc := newTestUseCase(t, &mockUserRepository{}, &mockSessionRepository{})

		_, err := uc.CreateUser(ctx, "operator", "short", false)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
