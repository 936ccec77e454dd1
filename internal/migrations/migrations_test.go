package migrations_test

import (
	"context"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/internal/migrations"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/domain/wallet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}
	ctx := context.Background()

	var (
		container *tcpostgres.PostgresContainer
		err       error
	)
	func() {
		// testcontainers panics when no docker host can be found
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("docker not available: %v", r)
			}
		}()
		container, err = tcpostgres.Run(
			ctx,
			"postgres:15-alpine",
			tcpostgres.WithDatabase("testdb"),
			tcpostgres.WithUsername("test"),
			tcpostgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).WithStartupTimeout(30*time.Second),
			),
		)
	}()
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db
}

func TestMigrations_UpDown(t *testing.T) {
	db := startPostgres(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	require.NoError(t, migrations.Up(sqlDB))
	// second run is a no-op
	require.NoError(t, migrations.Up(sqlDB))

	for _, table := range []string{
		"users", "wallets", "goals", "goal_contributions",
		"transactions", "subscriptions", "investments", "chat_messages",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	require.NoError(t, migrations.Down(sqlDB, 1))
	assert.False(t, db.Migrator().HasTable("users"))
}

func TestMigrations_SchemaMatchesRepositories(t *testing.T) {
	db := startPostgres(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, migrations.Up(sqlDB))

	ctx := context.Background()
	uow := infrarepo.NewUoW(db)

	u, err := user.New("owner@example.com", "password123", "Owner")
	require.NoError(t, err)
	require.NoError(t, uow.UserRepository().Create(ctx, u))

	w, err := wallet.New(u.ID, "Main", wallet.TypeBank, decimal.RequireFromString("5000000"), "usd")
	require.NoError(t, err)
	require.NoError(t, uow.WalletRepository().Create(ctx, w))

	got, err := uow.WalletRepository().Get(ctx, w.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(got.Balance))
	assert.Equal(t, "USD", got.Currency)
}
