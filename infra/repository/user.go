package repository

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository on db.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	m := userFromDomain(u)
	return insert(r.db.WithContext(ctx), &m)
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, domainErr(err)
	}
	return userToDomain(&m), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var m User
	err := r.db.WithContext(ctx).
		Where("email = ?", user.NormalizeEmail(email)).
		First(&m).Error
	if err != nil {
		return nil, domainErr(err)
	}
	return userToDomain(&m), nil
}

func (r *userRepository) GetByResetTokenHash(ctx context.Context, hash string) (*user.User, error) {
	if hash == "" {
		return nil, domain.ErrNotFound
	}
	var m User
	err := r.db.WithContext(ctx).
		Where("reset_token_hash = ?", hash).
		First(&m).Error
	if err != nil {
		return nil, domainErr(err)
	}
	return userToDomain(&m), nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"email":                  u.Email,
			"password":               u.Password,
			"name":                   u.Name,
			"reset_token_hash":       optString(u.ResetTokenHash),
			"reset_token_expires_at": u.ResetTokenExpiresAt,
			"updated_at":             time.Now().UTC(),
		})
	return affected(res)
}

func userFromDomain(u *user.User) User {
	return User{
		ID:                  u.ID,
		Email:               u.Email,
		Password:            u.Password,
		Name:                u.Name,
		ResetTokenHash:      optString(u.ResetTokenHash),
		ResetTokenExpiresAt: u.ResetTokenExpiresAt,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func userToDomain(m *User) *user.User {
	return &user.User{
		ID:                  m.ID,
		Email:               m.Email,
		Password:            m.Password,
		Name:                m.Name,
		ResetTokenHash:      derefString(m.ResetTokenHash),
		ResetTokenExpiresAt: m.ResetTokenExpiresAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
