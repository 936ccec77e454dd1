package user

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned for a wrong email or password. The
	// message never says which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidResetToken is returned for unknown, used or expired reset tokens.
	ErrInvalidResetToken = errors.New("reset token is invalid or has expired")
)

// AnonymousName is stored as contributor name when the contributing user
// record cannot be resolved.
const AnonymousName = "Anonymous"

// User represents a user in the system.
type User struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	Password            string     `json:"-"`
	Name                string     `json:"name"`
	ResetTokenHash      string     `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NormalizeEmail lower-cases and trims an email so that lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// New creates a new User with a hashed password and current timestamps.
func New(email, password, name string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	if !utils.IsEmail(email) {
		return nil, errors.New("email is not valid")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DisplayName returns the name shown to other users.
func (u *User) DisplayName() string {
	if u == nil || strings.TrimSpace(u.Name) == "" {
		return AnonymousName
	}
	return u.Name
}

// ResetTokenValid reports whether hash matches the stored reset token and
// the token has not expired at now.
func (u *User) ResetTokenValid(hash string, now time.Time) bool {
	if u.ResetTokenHash == "" || u.ResetTokenExpiresAt == nil {
		return false
	}
	if u.ResetTokenHash != hash {
		return false
	}
	return now.Before(*u.ResetTokenExpiresAt)
}
