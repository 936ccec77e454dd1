package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/internal/testutils"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	txsvc "github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestTransactionLifecycle(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := txsvc.New(uow, testutils.DiscardLogger())
	ctx := context.Background()
	owner := uuid.New()

	older, err := svc.Create(ctx, owner, txsvc.CreateInput{
		Amount:      decimal.NewFromInt(120000),
		Description: "Salary",
		Type:        transaction.TypeIncome,
		Date:        day(2025, time.March, 1),
		Wallet:      "Bank",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", older.Date.Format(transaction.DateLayout))

	newer, err := svc.Create(ctx, owner, txsvc.CreateInput{
		Amount:      decimal.NewFromInt(3500),
		Description: "Groceries",
		Type:        transaction.TypeExpense,
		Category:    "food",
		Date:        day(2025, time.March, 4),
	})
	require.NoError(t, err)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	desc := "Weekly groceries"
	moved := day(2025, time.February, 27)
	updated, err := svc.Update(ctx, owner, newer.ID, txsvc.UpdateInput{Description: &desc, Date: &moved})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, "food", updated.Category)

	list, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, older.ID, list[0].ID)

	require.NoError(t, svc.Delete(ctx, owner, newer.ID))
	_, err = svc.Get(ctx, owner, newer.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransaction_Validation(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := txsvc.New(uow, testutils.DiscardLogger())
	ctx := context.Background()
	owner := uuid.New()
	base := txsvc.CreateInput{
		Amount:      decimal.NewFromInt(10),
		Description: "Coffee",
		Type:        transaction.TypeExpense,
		Date:        day(2025, time.January, 2),
	}

	tests := []struct {
		name   string
		mutate func(in *txsvc.CreateInput)
	}{
		{"missing description", func(in *txsvc.CreateInput) { in.Description = " " }},
		{"unknown type", func(in *txsvc.CreateInput) { in.Type = "transfer" }},
		{"zero amount", func(in *txsvc.CreateInput) { in.Amount = decimal.Zero }},
		{"sub-cent amount", func(in *txsvc.CreateInput) { in.Amount = decimal.RequireFromString("4.995") }},
		{"missing date", func(in *txsvc.CreateInput) { in.Date = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := svc.Create(ctx, owner, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	created, err := svc.Create(ctx, owner, base)
	require.NoError(t, err)
	bad := transaction.Type("gift")
	_, err = svc.Update(ctx, owner, created.ID, txsvc.UpdateInput{Type: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Get(ctx, uuid.New(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), created.ID), domain.ErrNotFound)
}
