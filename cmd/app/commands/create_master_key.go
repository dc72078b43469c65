package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RunCreateMasterKey generates a cryptographically secure 32-byte master key
// for credential encryption at rest and prints it in .env format. The key is
// held only in the operator's environment; losing it makes the stored
// credential record undecryptable.
func RunCreateMasterKey() error {
	masterKey := make([]byte, 32)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(masterKey)

	fmt.Println("# Add this to your .env file or deployment environment.")
	fmt.Println("# Keep it out of version control; without it the stored")
	fmt.Println("# credential record cannot be decrypted.")
	fmt.Printf("DB_CREDENTIALS_MASTER_KEY=\"%s\"\n", encoded)

	return nil
}
