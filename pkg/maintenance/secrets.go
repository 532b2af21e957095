package maintenance

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24

	// Domain separation for the derived encryption key.
	secretKeyInfo = "HubAdminProviderSecretKey"
)

var ErrDecryptFailed = errors.New("failed to decrypt secret")

// SecretBox encrypts stored provider secrets at rest. The box key is
// derived from the operator-supplied master key with HKDF-SHA256 so
// rotating the master key re-encrypts under a fresh derived key.
type SecretBox struct {
	key [keySize]byte
}

func NewSecretBox(masterKey []byte) (*SecretBox, error) {
	if len(masterKey) == 0 {
		return nil, errors.New("master key is required")
	}

	box := &SecretBox{}

	reader := hkdf.New(sha256.New, masterKey, nil, []byte(secretKeyInfo))
	if _, err := io.ReadFull(reader, box.key[:]); err != nil {
		return nil, fmt.Errorf("failed to derive secret key: %w", err)
	}

	return box, nil
}

// Encrypt seals a plaintext secret and returns it base64-encoded with the
// random nonce prepended.
func (b *SecretBox) Encrypt(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &b.key)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Tampered or foreign-key ciphertexts fail with
// ErrDecryptFailed.
func (b *SecretBox) Decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptFailed, err)
	}

	if len(sealed) < nonceSize {
		return "", ErrDecryptFailed
	}

	var nonce [nonceSize]byte

	copy(nonce[:], sealed[:nonceSize])

	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrDecryptFailed
	}

	return string(plaintext), nil
}

// Rekey decrypts a ciphertext under this box and re-encrypts it under the
// replacement box.
func (b *SecretBox) Rekey(encoded string, next *SecretBox) (string, error) {
	plaintext, err := b.Decrypt(encoded)
	if err != nil {
		return "", err
	}

	return next.Encrypt(plaintext)
}
