package credentials

import (
	"testing"

	"da-go/internal/config"
)

func TestNewEncryptorFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.CredentialsConfig
		wantErr bool
	}{
		{
			name: "age encryptor",
			cfg: config.CredentialsConfig{
				Type:           "age",
				PublicKeyPath:  "/tmp/da.pub",
				PrivateKeyPath: "/tmp/da.key",
			},
		},
		{
			name: "empty type defaults to age",
			cfg: config.CredentialsConfig{
				PublicKeyPath:  "/tmp/da.pub",
				PrivateKeyPath: "/tmp/da.key",
			},
		},
		{
			name: "plain encryptor",
			cfg:  config.CredentialsConfig{Type: "plain"},
		},
		{
			name:    "unknown type",
			cfg:     config.CredentialsConfig{Type: "vault"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewEncryptorFromConfig(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEncryptorFromConfig() error = %v", err)
			}
			if enc == nil {
				t.Error("NewEncryptorFromConfig() returned nil encryptor")
			}
		})
	}
}
