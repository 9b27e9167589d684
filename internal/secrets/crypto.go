package secrets

import (
	"crypto/rand"
	"encoding/base64"

	kerrors "github.com/goonidz/ghsecret/internal/errors"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/nacl/box"
)

// KeySize is the length in bytes of an X25519 public or private key.
const KeySize = 32

// Overhead is the number of bytes a sealed box adds to the plaintext:
// the ephemeral public key followed by the Poly1305 tag.
const Overhead = box.AnonymousOverhead

// ParsePublicKey decodes a standard base64 public key as returned by the
// GitHub API. The decoded key must be exactly KeySize bytes.
func ParsePublicKey(encoded string) (*[KeySize]byte, error) {
	if encoded == "" {
		return nil, errors.Wrap(kerrors.ErrInvalidPublicKey, "public key is empty")
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrapf(kerrors.ErrInvalidPublicKey, "decoding base64: %v", err)
	}
	if len(raw) != KeySize {
		return nil, errors.Wrapf(kerrors.ErrInvalidPublicKey, "expected %d bytes, got %d", KeySize, len(raw))
	}

	var key [KeySize]byte
	copy(key[:], raw)
	return &key, nil
}

// Seal encrypts plaintext to publicKey with an anonymous sealed box.
func Seal(publicKey *[KeySize]byte, plaintext []byte) ([]byte, error) {
	if publicKey == nil {
		return nil, errors.Wrap(kerrors.ErrInvalidPublicKey, "public key is nil")
	}

	sealed, err := box.SealAnonymous(nil, plaintext, publicKey, rand.Reader)
	if err != nil {
		return nil, errors.Wrapf(kerrors.ErrSealFailed, "sealing: %v", err)
	}
	return sealed, nil
}

// SealString seals the UTF-8 bytes of plaintext under a base64 public key
// and returns the base64 ciphertext expected by the secrets endpoint.
func SealString(publicKeyB64, plaintext string) (string, error) {
	publicKey, err := ParsePublicKey(publicKeyB64)
	if err != nil {
		return "", err
	}

	sealed, err := Seal(publicKey, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// GenerateKeyPair creates a new X25519 key pair.
func GenerateKeyPair() (publicKey, privateKey *[KeySize]byte, err error) {
	publicKey, privateKey, err = box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generating key pair")
	}
	return publicKey, privateKey, nil
}

// Open decrypts a sealed box with the recipient's key pair.
func Open(sealed []byte, publicKey, privateKey *[KeySize]byte) ([]byte, error) {
	plaintext, ok := box.OpenAnonymous(nil, sealed, publicKey, privateKey)
	if !ok {
		return nil, errors.New("failed to open sealed box")
	}
	return plaintext, nil
}
