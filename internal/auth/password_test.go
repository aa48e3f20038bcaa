package auth_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dom/taskchat-backend/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTruncatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantLen  int
	}{
		{
			name:     "short password untouched",
			password: "password123",
			wantLen:  11,
		},
		{
			name:     "exactly 72 bytes untouched",
			password: strings.Repeat("a", 72),
			wantLen:  72,
		},
		{
			name:     "ascii over limit cut at 72",
			password: strings.Repeat("a", 100),
			wantLen:  72,
		},
		{
			name:     "two byte runes aligned on limit",
			password: strings.Repeat("é", 50),
			wantLen:  72,
		},
		{
			name:     "partial rune dropped",
			password: "a" + strings.Repeat("é", 50),
			wantLen:  71,
		},
		{
			name:     "four byte runes",
			password: strings.Repeat("😀", 25),
			wantLen:  72,
		},
		{
			name:     "four byte runes misaligned",
			password: "ab" + strings.Repeat("😀", 25),
			wantLen:  70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := auth.TruncatePassword(tt.password)
			assert.Len(t, got, tt.wantLen)
			assert.True(t, utf8.ValidString(got))
			assert.True(t, strings.HasPrefix(tt.password, got))
		})
	}
}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{name: "ascii", password: "correct horse battery staple"},
		{name: "exactly 72 bytes", password: strings.Repeat("x", 72)},
		{name: "100 byte utf-8", password: strings.Repeat("é", 50)},
		{name: "101 byte utf-8 with split rune", password: "a" + strings.Repeat("é", 50)},
		{name: "long ascii", password: strings.Repeat("p", 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)

			assert.True(t, hasher.Verify(tt.password, hash))
			assert.False(t, hasher.Verify("X"+tt.password, hash))
		})
	}
}

func TestPasswordHasher_VerifyNeverFails(t *testing.T) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty hash", hash: ""},
		{name: "not a bcrypt hash", hash: "plaintext"},
		{name: "truncated bcrypt hash", hash: "$2a$04$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, hasher.Verify("password", tt.hash))
			})
		})
	}
}

func TestNewPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := auth.NewPasswordHasher(0)

	hash, err := hasher.Hash("password")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
