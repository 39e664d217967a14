package testutil

import (
	"da-go/internal/credentials"
)

// NewTestEncryptor creates a passthrough encryptor for testing.
func NewTestEncryptor() credentials.Encryptor {
	return credentials.NewPlainEncryptor()
}
