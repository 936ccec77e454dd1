package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// User represents a user record in the database.
type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email               string    `gorm:"uniqueIndex;not null;size:255"`
	Password            string    `gorm:"not null"`
	Name                string    `gorm:"size:255"`
	ResetTokenHash      *string   `gorm:"size:64;index"`
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Wallet represents a wallet record in the database.
type Wallet struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name      string          `gorm:"size:255;not null"`
	Type      string          `gorm:"size:32;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	Currency  string          `gorm:"type:varchar(3);not null;default:'USD'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Goal represents a savings goal record in the database.
type Goal struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name          string          `gorm:"size:255;not null"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	Deadline      *datatypes.Date
	ShareToken    *string `gorm:"size:64;uniqueIndex"`
	ShareEnabled  bool    `gorm:"not null;default:false"`
	Contributions []GoalContribution
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// GoalContribution is one row of a goal's append-only contribution log.
type GoalContribution struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GoalID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	ContributorName string          `gorm:"size:255"`
	WalletName      *string         `gorm:"size:255"`
	WalletType      *string         `gorm:"size:32"`
	Note            string
	CreatedAt       time.Time `gorm:"index"`
}

// Transaction represents an income or expense record in the database.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Description string          `gorm:"not null"`
	Type        string          `gorm:"size:16;not null"`
	Category    string          `gorm:"size:64"`
	Date        datatypes.Date  `gorm:"index;not null"`
	Wallet      string          `gorm:"size:255"`
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subscription represents a recurring charge record in the database.
type Subscription struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name            string          `gorm:"size:255;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	BillingCycle    string          `gorm:"size:16;not null"`
	NextBillingDate datatypes.Date  `gorm:"not null"`
	Category        string          `gorm:"size:64"`
	Status          string          `gorm:"size:16;not null"`
	Website         string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Investment represents a holding record in the database.
type Investment struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID        `gorm:"type:uuid;index;not null"`
	Symbol       string           `gorm:"size:16;not null"`
	Name         string           `gorm:"size:255"`
	AssetType    string           `gorm:"size:16;not null"`
	Quantity     decimal.Decimal  `gorm:"type:numeric(28,8);not null"`
	AverageCost  decimal.Decimal  `gorm:"type:numeric(20,4);not null"`
	Currency     string           `gorm:"type:varchar(3);not null;default:'USD'"`
	CurrentPrice *decimal.Decimal `gorm:"type:numeric(20,4)"`
	Notes        string
	PurchaseDate datatypes.Date
	Status       string `gorm:"size:16;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChatMessage represents a row of the global chat feed.
type ChatMessage struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	SenderName  string    `gorm:"size:255"`
	SenderEmail string    `gorm:"size:255"`
	Content     string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index"`
}

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&User{},
		&Wallet{},
		&Goal{},
		&GoalContribution{},
		&Transaction{},
		&Subscription{},
		&Investment{},
		&ChatMessage{},
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toDate(t time.Time) datatypes.Date {
	return datatypes.Date(t)
}

func fromDate(d datatypes.Date) time.Time {
	y, m, day := time.Time(d).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
