package credential

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptScheme verifies legacy bcrypt hashes. It is never used for new
// hashes.
type BcryptScheme struct{}

// Matches reports whether stored is a bcrypt modular-crypt string.
func (BcryptScheme) Matches(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// Verify delegates to bcrypt's own constant-time comparison. A malformed
// hash fails closed.
func (BcryptScheme) Verify(plaintext, stored string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	// Truncated or corrupted hash record.
	return false, nil
}
