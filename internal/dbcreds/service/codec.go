// Package service implements the cipher codec for credential records:
// authenticated encryption of a serialized DbConfig under a key derived from
// the operator-supplied master key.
package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/nexusai/backoffice/internal/dbcreds/domain"
	apperrors "github.com/nexusai/backoffice/internal/errors"
)

const (
	// keySize is the derived AES-256 key size in bytes.
	keySize = 32
	// saltSize is the KDF salt size; a fresh salt is generated per encryption.
	saltSize = 16
	// nonceSize is the AES-GCM nonce size.
	nonceSize = 12
	// tagSize is the GCM authentication tag size.
	tagSize = 16

	// Argon2id parameters: 64 MiB memory, single pass, four lanes. Memory-hard
	// so a leaked record plus a guessed master key still costs real work.
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// Codec encrypts and decrypts credential records with a master key.
type Codec interface {
	// Encrypt serializes and authenticated-encrypts the configuration.
	// Each call uses a fresh salt and nonce, so encrypting identical input
	// twice yields different records.
	Encrypt(cfg domain.DbConfig, masterKey string) (*domain.EncryptedRecord, error)

	// Decrypt re-derives the key from the record's salt and verifies the
	// authentication tag before returning plaintext. Wrong key and tampered
	// ciphertext are indistinguishable: both yield ErrDecryptionFailed.
	Decrypt(record *domain.EncryptedRecord, masterKey string) (domain.DbConfig, error)
}

// AESGCMCodec implements Codec using Argon2id key derivation and AES-256-GCM.
//
// The instance is stateless and safe for concurrent use. The record layout
// keeps ciphertext, nonce (iv), authentication tag and salt as separate
// hex-encoded fields.
type AESGCMCodec struct{}

// NewAESGCMCodec creates a new AESGCMCodec.
func NewAESGCMCodec() *AESGCMCodec {
	return &AESGCMCodec{}
}

// DeriveKey derives a fixed-length symmetric key from the master key and salt
// using Argon2id. The same (masterKey, salt) pair always yields the same key;
// different salts yield unlinkable keys even for the same master key.
func DeriveKey(masterKey string, salt []byte) []byte {
	return argon2.IDKey([]byte(masterKey), salt, argonTime, argonMemory, argonThreads, keySize)
}

// Encrypt implements Codec.
func (c *AESGCMCodec) Encrypt(
	cfg domain.DbConfig,
	masterKey string,
) (*domain.EncryptedRecord, error) {
	plaintext, err := json.Marshal(cfg)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to serialize credentials")
	}
	defer domain.Zero(plaintext)

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate salt")
	}

	key := DeriveKey(masterKey, salt)
	defer domain.Zero(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate nonce")
	}

	// Seal appends the authentication tag to the ciphertext; the record keeps
	// them as separate fields.
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - tagSize

	return &domain.EncryptedRecord{
		Ciphertext: hex.EncodeToString(sealed[:split]),
		IV:         hex.EncodeToString(nonce),
		AuthTag:    hex.EncodeToString(sealed[split:]),
		Salt:       hex.EncodeToString(salt),
		Version:    domain.RecordVersion,
	}, nil
}

// Decrypt implements Codec.
func (c *AESGCMCodec) Decrypt(
	record *domain.EncryptedRecord,
	masterKey string,
) (domain.DbConfig, error) {
	ciphertext, err := hex.DecodeString(record.Ciphertext)
	if err != nil {
		return domain.DbConfig{}, domain.ErrDecryptionFailed
	}
	nonce, err := hex.DecodeString(record.IV)
	if err != nil || len(nonce) != nonceSize {
		return domain.DbConfig{}, domain.ErrDecryptionFailed
	}
	tag, err := hex.DecodeString(record.AuthTag)
	if err != nil || len(tag) != tagSize {
		return domain.DbConfig{}, domain.ErrDecryptionFailed
	}
	salt, err := hex.DecodeString(record.Salt)
	if err != nil || len(salt) != saltSize {
		return domain.DbConfig{}, domain.ErrDecryptionFailed
	}

	key := DeriveKey(masterKey, salt)
	defer domain.Zero(key)

	aead, err := newGCM(key)
	if err != nil {
		return domain.DbConfig{}, err
	}

	plaintext, err := aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		// Wrong key and corrupted ciphertext are not distinguished.
		return domain.DbConfig{}, domain.ErrDecryptionFailed
	}
	defer domain.Zero(plaintext)

	var cfg domain.DbConfig
	if err := json.Unmarshal(plaintext, &cfg); err != nil {
		return domain.DbConfig{}, domain.ErrDecryptionFailed
	}

	return cfg, nil
}

// newGCM builds the AEAD primitive for a derived key.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aead, nil
}
