package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Stored format: pbkdf2:sha256:<iterations>$<salt>$<key>, salt and key
// base64url without padding.
const (
	pbkdf2Tag = "pbkdf2"

	// DefaultIterations is the PBKDF2-SHA256 iteration count for new hashes.
	DefaultIterations = 600000

	saltLen = 16
	keyLen  = 32
)

// PBKDF2Scheme is the current hash scheme.
type PBKDF2Scheme struct {
	Iterations int
}

// Matches reports whether stored carries the pbkdf2 tag.
func (PBKDF2Scheme) Matches(stored string) bool {
	return strings.HasPrefix(stored, pbkdf2Tag+":")
}

// Hash derives a key from plaintext with a fresh random salt.
func (s *PBKDF2Scheme) Hash(plaintext string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashFailed, err)
	}
	key := pbkdf2.Key([]byte(plaintext), salt, s.Iterations, keyLen, sha256.New)
	return fmt.Sprintf("%s:sha256:%d$%s$%s",
		pbkdf2Tag,
		s.Iterations,
		base64.RawURLEncoding.EncodeToString(salt),
		base64.RawURLEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the key with the parameters embedded in stored and
// compares in constant time.
func (PBKDF2Scheme) Verify(plaintext, stored string) (bool, error) {
	digest, iterations, salt, want, ok := parsePBKDF2(stored)
	if !ok || digest != "sha256" {
		return false, nil
	}
	got := pbkdf2.Key([]byte(plaintext), salt, iterations, len(want), sha256.New)
	if len(got) != len(want) {
		return false, nil
	}
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func parsePBKDF2(stored string) (digest string, iterations int, salt, key []byte, ok bool) {
	head, rest, found := strings.Cut(stored, "$")
	if !found {
		return "", 0, nil, nil, false
	}
	fields := strings.Split(head, ":")
	if len(fields) != 3 || fields[0] != pbkdf2Tag {
		return "", 0, nil, nil, false
	}
	iterations, err := strconv.Atoi(fields[2])
	if err != nil || iterations <= 0 {
		return "", 0, nil, nil, false
	}
	saltB64, keyB64, found := strings.Cut(rest, "$")
	if !found {
		return "", 0, nil, nil, false
	}
	salt, err = base64.RawURLEncoding.DecodeString(saltB64)
	if err != nil || len(salt) == 0 {
		return "", 0, nil, nil, false
	}
	key, err = base64.RawURLEncoding.DecodeString(keyB64)
	if err != nil || len(key) == 0 {
		return "", 0, nil, nil, false
	}
	return fields[1], iterations, salt, key, true
}
