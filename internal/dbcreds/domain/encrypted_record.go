package domain

// RecordVersion tags the encrypted record format. No migration logic exists
// today; the tag is reserved for future format changes.
const RecordVersion = "1.0"

// EncryptedRecord is the singleton ciphertext-plus-metadata blob representing
// the stored database credentials. All binary fields are hex-encoded.
type EncryptedRecord struct {
	// Ciphertext is the AES-256-GCM ciphertext of the serialized DbConfig,
	// with the authentication tag split out into AuthTag.
	Ciphertext string `json:"ciphertext"`
	// IV is the 12-byte nonce, freshly generated per encryption.
	IV string `json:"iv"`
	// AuthTag is the 16-byte GCM authentication tag.
	AuthTag string `json:"authTag"`
	// Salt is the 16-byte KDF salt, freshly generated per encryption so the
	// derived key is unlinkable across records even for a reused master key.
	Salt string `json:"salt"`
	// Version tags the record format.
	Version string `json:"version"`
}
