// Package dto provides data transfer objects for the admin db-config endpoints.
package dto

import (
	"github.com/nexusai/backoffice/internal/dbcreds/domain"
)

// SaveDbConfigRequest carries a candidate configuration plus the caller's own
// account password for re-authentication. The candidate password may be
// omitted to reuse the previously stored one.
type SaveDbConfigRequest struct {
	Host            string `json:"host"`
	Port            int    `json:"port"`
	User            string `json:"user"`
	Password        string `json:"password"`
	Database        string `json:"database"`
	SessionTable    string `json:"sessionTable"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ToDomain maps the request to the domain candidate.
func (r *SaveDbConfigRequest) ToDomain() domain.DbConfig {
	return domain.DbConfig{
		Host:         r.Host,
		Port:         r.Port,
		User:         r.User,
		Password:     r.Password,
		Database:     r.Database,
		SessionTable: r.SessionTable,
	}
}

// TestConnectionRequest carries a full candidate for the test-only path.
// Unlike save, the password is always required here: nothing is persisted,
// so there is no stored secret to merge from.
type TestConnectionRequest struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// ToDomain maps the request to the domain candidate.
func (r *TestConnectionRequest) ToDomain() domain.DbConfig {
	return domain.DbConfig{
		Host:     r.Host,
		Port:     r.Port,
		User:     r.User,
		Password: r.Password,
		Database: r.Database,
	}
}
