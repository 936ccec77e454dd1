package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDomainErr(t *testing.T) {
	driverErr := errors.New("UNIQUE constraint failed: users.email")
	testCases := []struct {
		desc string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"missing row", gorm.ErrRecordNotFound, domain.ErrNotFound},
		{"missing row wrapped", fmt.Errorf("find goal: %w", gorm.ErrRecordNotFound), domain.ErrNotFound},
		{"duplicate key", fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey), domain.ErrAlreadyExists},
		{"driver error", driverErr, driverErr},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, domainErr(tc.in))
		})
	}
}

func TestAffected(t *testing.T) {
	assert.ErrorIs(t, affected(&gorm.DB{RowsAffected: 0}), domain.ErrNotFound)
	assert.NoError(t, affected(&gorm.DB{RowsAffected: 1}))
	assert.ErrorIs(t, affected(&gorm.DB{Error: gorm.ErrDuplicatedKey}), domain.ErrAlreadyExists)
}
