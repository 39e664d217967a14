package credentials

import (
	"fmt"

	"da-go/internal/config"
)

// NewEncryptorFromConfig creates an Encryptor based on the configuration type.
func NewEncryptorFromConfig(cfg config.CredentialsConfig) (Encryptor, error) {
	switch cfg.Type {
	case "age", "":
		return NewAgeEncryptor(cfg.PublicKeyPath, cfg.PrivateKeyPath), nil
	case "plain":
		return NewPlainEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown credentials type: %q", cfg.Type)
	}
}
