package credential

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2idScheme verifies legacy argon2id PHC strings of the form
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>.
type Argon2idScheme struct{}

// Matches reports whether stored carries the argon2id tag.
func (Argon2idScheme) Matches(stored string) bool {
	return strings.HasPrefix(stored, "$argon2id$")
}

// Verify recomputes the key with the embedded parameters and compares in
// constant time. Any parse failure is a mismatch.
func (Argon2idScheme) Verify(plaintext, stored string) (bool, error) {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, nil
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, nil
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, nil
	}
	if threads == 0 || threads > 255 {
		return false, nil
	}
	if time == 0 || memory == 0 || memory > 1<<21 {
		return false, nil
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return false, nil
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 || len(want) > 1<<10 {
		return false, nil
	}

	got := argon2.IDKey([]byte(plaintext), salt, time, memory, uint8(threads), uint32(len(want)))
	if len(got) != len(want) {
		return false, nil
	}
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
