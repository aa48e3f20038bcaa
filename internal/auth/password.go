package auth

import (
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the most input bcrypt will consider.
const MaxPasswordBytes = 72

type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a bcrypt hasher. A cost outside bcrypt's accepted
// range falls back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	safe := TruncatePassword(password)
	if len(safe) < len(password) {
		log.Printf("INFO [auth.Hash] password truncated from %d to %d bytes", len(password), len(safe))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(safe), h.cost)
	if err != nil {
		log.Printf("ERROR [auth.Hash] bcrypt failed: %v", err)
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. It never fails loudly: a
// malformed hash or a mismatch both yield false.
func (h *PasswordHasher) Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(TruncatePassword(password)))
	if err == nil {
		return true
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		log.Printf("INFO [auth.Verify] password mismatch")
	} else {
		log.Printf("ERROR [auth.Verify] verification failed: %v", err)
	}
	return false
}

// TruncatePassword cuts password to at most MaxPasswordBytes without leaving
// a partial UTF-8 sequence at the end.
func TruncatePassword(password string) string {
	if len(password) <= MaxPasswordBytes {
		return password
	}

	safe := strings.ToValidUTF8(password[:MaxPasswordBytes], "")
	if len(safe) > MaxPasswordBytes {
		safe = strings.ToValidUTF8(safe[:MaxPasswordBytes], "")
	}
	return safe
}
