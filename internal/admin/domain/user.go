// Package domain defines the admin user and session models for the back office.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a back-office account. Password holds the argon2id hash, never the
// plaintext.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is a server-side login session. Only the SHA-256 hash of the
// session token is stored; the plaintext token lives in the client cookie.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
