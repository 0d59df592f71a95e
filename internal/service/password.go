package service

import (
	"crypto/sha512"
	"encoding/base64"
	"fmt"

	"github.com/msomdec/tankermade/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when a PasswordHasher is created with cost 0.
const DefaultBcryptCost = 12

// PasswordHasher hashes and verifies passwords with bcrypt.
//
// Plaintext is SHA-384 digested and base64 encoded before bcrypt sees it, so
// every password maps to 64 bytes and stays inside bcrypt's 72 byte input
// limit. Stored hashes are ordinary $2a$ strings carrying cost and salt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the given bcrypt cost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted hash of plaintext. Two calls with the same input
// produce different hashes.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a mismatch.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	if plaintext == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(plaintext)) == nil
}

func prehash(plaintext string) []byte {
	sum := sha512.Sum384([]byte(plaintext))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
