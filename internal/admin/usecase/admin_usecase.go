package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	"github.com/nexusai/backoffice/internal/admin/domain"
	"github.com/nexusai/backoffice/internal/admin/service"
	apperrors "github.com/nexusai/backoffice/internal/errors"
	appValidation "github.com/nexusai/backoffice/internal/validation"
)

// AdminUseCase handles admin authentication business logic.
type AdminUseCase struct {
	userRepo       UserRepository
	sessionRepo    SessionRepository
	tokenService   service.SessionTokenService
	passwordHasher *pwdhash.PasswordHasher
	sessionTTL     time.Duration
}

// NewAdminUseCase creates a new AdminUseCase.
func NewAdminUseCase(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenService service.SessionTokenService,
	sessionTTL time.Duration,
) (*AdminUseCase, error) {
	// Interactive policy: login hashing happens on every request to the
	// login endpoint, moderate cost keeps it responsive.
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &AdminUseCase{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		tokenService:   tokenService,
		passwordHasher: hasher,
		sessionTTL:     sessionTTL,
	}, nil
}

// Login verifies credentials and creates a session.
func (uc *AdminUseCase) Login(
	ctx context.Context,
	username, password string,
) (string, *domain.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return "", nil, domain.ErrInvalidLogin
		}
		return "", nil, err
	}

	ok, err := uc.passwordHasher.Verify([]byte(password), user.Password)
	if err != nil || !ok {
		return "", nil, domain.ErrInvalidLogin
	}

	plainToken, tokenHash, err := uc.tokenService.GenerateToken()
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(uc.sessionTTL),
		CreatedAt: now,
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, err
	}

	return plainToken, user, nil
}

// Logout deletes the session for the given token.
func (uc *AdminUseCase) Logout(ctx context.Context, plainToken string) error {
	tokenHash := uc.tokenService.HashToken(plainToken)
	if err := uc.sessionRepo.DeleteByTokenHash(ctx, tokenHash); err != nil &&
		!apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

// Authenticate resolves a session token to its user.
func (uc *AdminUseCase) Authenticate(
	ctx context.Context,
	plainToken string,
) (*domain.User, error) {
	tokenHash := uc.tokenService.HashToken(plainToken)

	session, err := uc.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		// Best-effort cleanup; an expired session is invalid either way.
		_ = uc.sessionRepo.DeleteByTokenHash(ctx, tokenHash)
		return nil, domain.ErrSessionInvalid
	}

	user, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, err
	}

	return user, nil
}

// VerifyPassword checks a plaintext password against the user's stored hash.
func (uc *AdminUseCase) VerifyPassword(
	ctx context.Context,
	userID uuid.UUID,
	password string,
) (bool, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	ok, err := uc.passwordHasher.Verify([]byte(password), user.Password)
	if err != nil {
		return false, nil
	}
	return ok, nil
}

// CreateUser registers a new back-office account.
func (uc *AdminUseCase) CreateUser(
	ctx context.Context,
	username, password string,
	isAdmin bool,
) (*domain.User, error) {
	username = strings.TrimSpace(username)

	err := validation.Errors{
		"username": validation.Validate(username,
			validation.Required, appValidation.NotBlank, validation.Length(3, 64)),
		"password": validation.Validate(password,
			validation.Required, validation.Length(8, 128)),
	}.Filter()
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	hashedPassword, err := uc.passwordHasher.Hash([]byte(password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	user := &domain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  username,
		Password:  hashedPassword,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
