// Package auth holds the credential primitives of the service: salted
// password digests and signed session tokens.
package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Default KDF parameters.
const (
	DefaultSaltSize   = 16
	DefaultHashSize   = 32
	DefaultIterations = 100000
)

// PasswordHasher derives and verifies salted PBKDF2-HMAC-SHA512 digests.
// The stored form is base64(salt‖hash).
type PasswordHasher struct {
	saltSize   int
	hashSize   int
	iterations int
}

// NewPasswordHasher constructs a hasher with the given parameters.
// Non-positive values fall back to the defaults.
func NewPasswordHasher(saltSize, hashSize, iterations int) *PasswordHasher {
	if saltSize <= 0 {
		saltSize = DefaultSaltSize
	}
	if hashSize <= 0 {
		hashSize = DefaultHashSize
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &PasswordHasher{saltSize: saltSize, hashSize: hashSize, iterations: iterations}
}

// Hash derives a digest for the password with a fresh random salt and
// returns base64(salt‖hash). A salt is never reused across calls.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt generation error: %w", err)
	}

	hash := pbkdf2.Key([]byte(password), salt, h.iterations, h.hashSize, sha512.New)

	buf := make([]byte, 0, h.saltSize+h.hashSize)
	buf = append(buf, salt...)
	buf = append(buf, hash...)

	return base64.StdEncoding.EncodeToString(buf), nil
}

// Verify re-derives a digest from the password and the salt embedded in the
// stored digest and compares the two in constant time over the full hash
// length. Malformed input (bad base64, wrong length) verifies false; Verify
// never fails with an error.
func (h *PasswordHasher) Verify(password, digest string) bool {
	decoded, err := base64.StdEncoding.DecodeString(digest)
	if err != nil {
		return false
	}
	if len(decoded) != h.saltSize+h.hashSize {
		return false
	}

	salt := decoded[:h.saltSize]
	stored := decoded[h.saltSize:]

	derived := pbkdf2.Key([]byte(password), salt, h.iterations, h.hashSize, sha512.New)

	return subtle.ConstantTimeCompare(derived, stored) == 1
}
