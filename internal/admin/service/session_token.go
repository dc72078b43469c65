// Package service provides session token generation and hashing for admin
// authentication. Tokens are random 256-bit values; only their SHA-256 hash
// is ever persisted.
package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/nexusai/backoffice/internal/errors"
)

// SessionTokenService generates and hashes session tokens.
type SessionTokenService interface {
	// GenerateToken returns a new plain token and its hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token for storage or lookup.
	HashToken(plainToken string) string
}

type sessionTokenService struct{}

// NewSessionTokenService creates a SessionTokenService using SHA-256 hashing.
func NewSessionTokenService() SessionTokenService {
	return &sessionTokenService{}
}

// GenerateToken creates a cryptographically secure 32-byte random token,
// base64 URL-encoded, plus its SHA-256 hash.
func (s *sessionTokenService) GenerateToken() (string, string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken := base64.URLEncoding.EncodeToString(randomBytes)
	return plainToken, s.HashToken(plainToken), nil
}

// HashToken hashes a plain token using SHA-256, returned as hex.
func (s *sessionTokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}
