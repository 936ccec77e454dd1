package investment_test

import (
	"context"
	"testing"

	"github.com/amirasaad/fintrack/internal/testutils"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/investment"
	"github.com/amirasaad/fintrack/pkg/domain/market"
	invsvc "github.com/amirasaad/fintrack/pkg/service/investment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPrices struct {
	mock.Mock
}

func (m *mockPrices) Quote(ctx context.Context, caller, symbol string) (*market.Quote, error) {
	args := m.Called(ctx, caller, symbol)
	q, _ := args.Get(0).(*market.Quote)
	return q, args.Error(1)
}

func TestInvestmentLifecycle(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := invsvc.New(uow, nil, testutils.DiscardLogger())
	ctx := context.Background()
	owner := uuid.New()

	inv, err := svc.Create(ctx, owner, invsvc.CreateInput{
		Symbol:      " aapl ",
		Quantity:    decimal.NewFromInt(10),
		AverageCost: decimal.RequireFromString("150.25"),
	})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", inv.Symbol)
	assert.Equal(t, "AAPL", inv.Name)
	assert.Equal(t, "USD", inv.Currency)
	assert.Equal(t, investment.AssetStock, inv.AssetType)
	assert.Equal(t, investment.StatusActive, inv.Status)
	assert.False(t, inv.PurchaseDate.IsZero())
	assert.True(t, inv.MarketValue().Equal(decimal.RequireFromString("1502.5")))

	sold := investment.StatusSold
	updated, err := svc.Update(ctx, owner, inv.ID, invsvc.UpdateInput{Status: &sold})
	require.NoError(t, err)
	assert.Equal(t, investment.StatusSold, updated.Status)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.Get(ctx, uuid.New(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, owner, inv.ID))
	_, err = svc.Get(ctx, owner, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvestment_Validation(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := invsvc.New(uow, nil, testutils.DiscardLogger())
	ctx := context.Background()
	owner := uuid.New()

	_, err := svc.Create(ctx, owner, invsvc.CreateInput{Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Create(ctx, owner, invsvc.CreateInput{Symbol: "BTC", Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Create(ctx, owner, invsvc.CreateInput{Symbol: "BTC", Quantity: decimal.NewFromInt(1), AssetType: "nft"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Create(ctx, owner, invsvc.CreateInput{Symbol: "BTC", Quantity: decimal.RequireFromString("0.000000001")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Create(ctx, owner, invsvc.CreateInput{
		Symbol: "BTC", Quantity: decimal.NewFromInt(1), AverageCost: decimal.RequireFromString("187.12345"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRefreshPrice(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	prices := new(mockPrices)
	svc := invsvc.New(uow, prices, testutils.DiscardLogger())
	ctx := context.Background()
	owner := uuid.New()

	inv, err := svc.Create(ctx, owner, invsvc.CreateInput{Symbol: "MSFT", Quantity: decimal.NewFromInt(2)})
	require.NoError(t, err)
	assert.Nil(t, inv.CurrentPrice)

	prices.On("Quote", mock.Anything, owner.String(), "MSFT").
		Return(&market.Quote{Symbol: "MSFT", Price: decimal.RequireFromString("412.10")}, nil).Once()

	refreshed, err := svc.RefreshPrice(ctx, owner, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, refreshed.CurrentPrice)
	assert.True(t, refreshed.CurrentPrice.Equal(decimal.RequireFromString("412.10")))
	assert.True(t, refreshed.MarketValue().Equal(decimal.RequireFromString("824.20")))

	prices.On("Quote", mock.Anything, owner.String(), "MSFT").
		Return(nil, domain.ErrMarketDataUnavailable).Once()
	_, err = svc.RefreshPrice(ctx, owner, inv.ID)
	assert.ErrorIs(t, err, domain.ErrMarketDataUnavailable)

	stored, err := svc.Get(ctx, owner, inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentPrice.Equal(decimal.RequireFromString("412.10")))
	prices.AssertExpectations(t)

	_, err = svc.RefreshPrice(ctx, uuid.New(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
