package user_test

import (
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	u, err := user.New("  Alice@Example.COM ", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "alice", u.Name)
	assert.NotEqual(t, "password123", u.Password)
	assert.True(t, utils.CheckPasswordHash("password123", u.Password))

	_, err = user.New("", "password123", "x")
	assert.Error(t, err)
	_, err = user.New("not-an-email", "password123", "x")
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	var missing *user.User
	assert.Equal(t, user.AnonymousName, missing.DisplayName())
	assert.Equal(t, user.AnonymousName, (&user.User{Name: "  "}).DisplayName())
	assert.Equal(t, "Bob", (&user.User{Name: "Bob"}).DisplayName())
}

func TestResetTokenValid(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(time.Hour)
	u := &user.User{ResetTokenHash: "abc", ResetTokenExpiresAt: &exp}

	assert.True(t, u.ResetTokenValid("abc", now))
	assert.False(t, u.ResetTokenValid("abd", now))
	assert.False(t, u.ResetTokenValid("abc", exp))
	assert.False(t, (&user.User{}).ResetTokenValid("", now))
}
