package repository

import (
	"errors"

	"github.com/amirasaad/fintrack/pkg/domain"
	"gorm.io/gorm"
)

// domainErr translates the gorm sentinels services branch on. Anything else
// is returned unchanged. Duplicate keys are only reported as
// gorm.ErrDuplicatedKey when the connection has TranslateError set.
func domainErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	}
	return err
}

func insert(db *gorm.DB, value any) error {
	return domainErr(db.Create(value).Error)
}

// affected maps a write that matched no rows to domain.ErrNotFound.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return domainErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
