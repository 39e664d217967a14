package credentials

import "io"

// Encryptor protects the cached identity credential at rest. Encrypt only
// needs the public key; reading the cache back requires unlocking the
// passphrase-protected private key first.
type Encryptor interface {
	// Setup generates and stores a fresh key pair, protecting the private
	// key with the passphrase.
	Setup(passphrase string) error

	// Encrypt reads plaintext from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key with the passphrase and returns a
	// context able to decrypt cached data.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether a key pair exists.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked identity for decrypting data.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}
