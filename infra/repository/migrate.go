package repository

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table from the gorm models. The
// server relies on the SQL migrations in internal/migrations instead; this
// is for embedded and test databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
