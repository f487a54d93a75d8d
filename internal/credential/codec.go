// Package credential implements one-way password hashing with a
// self-describing stored format. Several scheme generations remain valid at
// verification time so accounts hashed under an older scheme keep
// authenticating; new hashes always use the current scheme.
package credential

import (
	"errors"
	"strings"
)

// ErrHashFailed indicates an internal failure while deriving a hash. It is
// distinct from a verification mismatch, which is reported as a false result.
var ErrHashFailed = errors.New("credential hashing failed")

// Scheme is a single hash-format generation. Verify must fail closed: a
// malformed stored representation is a mismatch, not an error. Errors are
// reserved for internal derivation failures.
type Scheme interface {
	// Matches reports whether the stored representation was produced by this
	// scheme, based on its format tag.
	Matches(stored string) bool
	Verify(plaintext, stored string) (bool, error)
}

// Codec hashes with the current scheme and verifies against every registered
// scheme, dispatching on the tag parsed from the stored representation.
type Codec struct {
	current *PBKDF2Scheme
	schemes []Scheme
}

// New creates a Codec with the default scheme set: PBKDF2-SHA256 for new
// hashes, bcrypt and argon2id accepted for verification of existing records.
func New() *Codec {
	return NewWithIterations(DefaultIterations)
}

// NewWithIterations creates a Codec whose current scheme uses the given
// PBKDF2 iteration count. Verification is unaffected since the count is
// embedded in each stored representation.
func NewWithIterations(iterations int) *Codec {
	current := &PBKDF2Scheme{Iterations: iterations}
	return &Codec{
		current: current,
		schemes: []Scheme{current, BcryptScheme{}, Argon2idScheme{}},
	}
}

// Hash derives a stored representation of plaintext using the current scheme
// and a fresh random salt.
func (c *Codec) Hash(plaintext string) (string, error) {
	return c.current.Hash(plaintext)
}

// Verify checks plaintext against a stored representation. Unknown tags and
// malformed representations verify false rather than erroring.
func (c *Codec) Verify(plaintext, stored string) (bool, error) {
	if stored == "" {
		return false, nil
	}
	for _, s := range c.schemes {
		if s.Matches(stored) {
			return s.Verify(plaintext, stored)
		}
	}
	return false, nil
}

// NeedsUpgrade reports whether the stored representation predates the current
// scheme. There is no automatic rehash on login; callers can use this to add
// one without touching the verification path.
func (c *Codec) NeedsUpgrade(stored string) bool {
	return !strings.HasPrefix(stored, pbkdf2Tag+":")
}
