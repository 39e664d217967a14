package credentials

import "io"

// PlainEncryptor passes data through unchanged. Use in tests and for
// throwaway setups where at-rest protection is not wanted.
type PlainEncryptor struct {
	configured bool
}

var _ Encryptor = (*PlainEncryptor)(nil)

func NewPlainEncryptor() *PlainEncryptor { return &PlainEncryptor{} }

func (e *PlainEncryptor) Setup(string) error {
	e.configured = true
	return nil
}

func (e *PlainEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	_, err := io.Copy(w, r)
	return err
}

func (e *PlainEncryptor) Unlock(string) (DecryptionContext, error) {
	return plainDecryptionContext{}, nil
}

func (e *PlainEncryptor) IsConfigured() bool { return true }

type plainDecryptionContext struct{}

func (plainDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	_, err := io.Copy(w, r)
	return err
}
