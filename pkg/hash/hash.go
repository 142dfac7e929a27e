// Package hash wraps bcrypt for credential storage. bcrypt generates its own
// random salt per call and CompareHashAndPassword is constant-time.
package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptySecret is returned when an empty secret reaches the hasher. Callers
// are expected to have validated presence already.
var ErrEmptySecret = errors.New("hash: empty secret")

// Hasher hashes and verifies plaintext secrets.
type Hasher struct {
	cost int
}

// New returns a Hasher with the given bcrypt cost. Non-positive or
// out-of-range costs fall back to bcrypt.DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of the secret.
func (h *Hasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the secret reproduces the stored hash.
func (h *Hasher) Verify(secret, hashedSecret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedSecret), []byte(secret)) == nil
}
