package password

import (
	"errors"
	"fmt"
	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest password bcrypt accepts. The limit is in bytes, not runes.
const MaxBytes = 72

var ErrTooLong = errors.New("password must be at most 72 bytes")

// dummyHash is compared against when a user does not exist so that a failed
// login costs the same bcrypt work either way.
var dummyHash = mustHash("not-a-real-password-for-timing")

func Hash(plain string) (string, error) {
	const op = "lib.password.Hash"

	if len(plain) > MaxBytes {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}

	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(b), nil
}

// Check reports whether plain matches hash. An empty hash is checked against
// a dummy value and always fails.
func Check(hash, plain string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func mustHash(plain string) []byte {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	return b
}
