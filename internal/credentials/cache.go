package credentials

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache stores the identity-session credential on disk, encrypted.
// Saving only needs the public key; loading requires the passphrase that
// unlocks the private key.
type Cache struct {
	path string
	enc  Encryptor
}

// NewCache creates a Cache at path using enc.
func NewCache(path string, enc Encryptor) *Cache {
	return &Cache{path: path, enc: enc}
}

// Save encrypts the credential and writes it to the cache file.
func (c *Cache) Save(credential string) error {
	if credential == "" {
		return fmt.Errorf("empty credential")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("creating credential directory: %w", err)
	}

	var buf bytes.Buffer
	if err := c.enc.Encrypt(strings.NewReader(credential), &buf); err != nil {
		return fmt.Errorf("encrypting credential: %w", err)
	}
	if err := os.WriteFile(c.path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing credential cache: %w", err)
	}
	return nil
}

// Load decrypts and returns the cached credential.
func (c *Cache) Load(passphrase string) (string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return "", fmt.Errorf("reading credential cache: %w", err)
	}

	dc, err := c.enc.Unlock(passphrase)
	if err != nil {
		return "", fmt.Errorf("unlocking credential store: %w", err)
	}

	var out bytes.Buffer
	if err := dc.Decrypt(bytes.NewReader(data), &out); err != nil {
		return "", fmt.Errorf("decrypting credential: %w", err)
	}

	cred := strings.TrimSpace(out.String())
	if cred == "" {
		return "", fmt.Errorf("credential cache is empty")
	}
	return cred, nil
}

// Clear removes the cache file. Removing an absent file is not an error.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credential cache: %w", err)
	}
	return nil
}

// Exists reports whether a cached credential is present.
func (c *Cache) Exists() bool {
	_, err := os.Stat(c.path)
	return err == nil
}
