// Package domain defines the core domain models for encrypted database
// credential storage. A single credential record exists at a time; it is
// encrypted at rest with a key derived from an operator-supplied master key.
package domain

// DbConfig holds the database connection credentials managed through the
// admin back office. The plaintext form lives in memory only; at rest it is
// always represented as an EncryptedRecord.
type DbConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	// SessionTable is the table the web session store binds to. It is carried
	// as part of the credential record so the site and the back office agree
	// on it, but it does not participate in connection URL construction.
	SessionTable string `json:"sessionTable"`
}

// Masked returns the API-safe view of the configuration. The masked type has
// no password field at all, so no serialization path can leak the secret.
func (c DbConfig) Masked() MaskedDbConfig {
	return MaskedDbConfig{
		Host:           c.Host,
		Port:           c.Port,
		User:           c.User,
		Database:       c.Database,
		SessionTable:   c.SessionTable,
		PasswordMasked: true,
	}
}

// MaskedDbConfig is the only representation of stored credentials ever
// returned to a client.
type MaskedDbConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Database       string `json:"database"`
	SessionTable   string `json:"sessionTable"`
	PasswordMasked bool   `json:"passwordMasked"`
}
