package loyalty_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/loyalty"
	"github.com/nikolayk812/pdv-core/internal/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"math/rand/v2"
	"testing"
)

func brl(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), currency.BRL)
}

func newLedger(t *testing.T) (*loyalty.Ledger, *memstore.Store, domain.Customer) {
	t.Helper()
	store := memstore.New()
	c, err := store.UpsertCustomer(t.Context(), uuid.New(), gofakeit.Name(), gofakeit.Numerify("119########"))
	require.NoError(t, err)
	return loyalty.NewLedger(store, store, store), store, c
}

func TestRedeem(t *testing.T) {
	tests := []struct {
		name        string
		seed        int64
		redeem      int64
		wantError   error
		wantBalance int64
	}{
		{name: "covered", seed: 20, redeem: 5, wantBalance: 15},
		{name: "whole balance", seed: 20, redeem: 20, wantBalance: 0},
		{name: "insufficient", seed: 4, redeem: 5, wantError: domain.ErrInsufficientPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			ledger, store, c := newLedger(t)

			_, _, err := ledger.Earn(ctx, c.ID, nil, tt.seed, "seed")
			require.NoError(t, err)

			orderID := uuid.New()
			tx, balance, err := ledger.Redeem(ctx, c.ID, &orderID, tt.redeem, "Pedido #1")
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)

				got, err := store.GetCustomer(ctx, c.ID)
				require.NoError(t, err)
				assert.Equal(t, tt.seed, got.Points)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, -tt.redeem, tx.Delta)
			assert.Equal(t, domain.LoyaltyRedeem, tx.Type)
			assert.Equal(t, tt.wantBalance, balance)

			rec, err := ledger.Reconcile(ctx, c.ID)
			require.NoError(t, err)
			assert.True(t, rec.Consistent())
			assert.Equal(t, tt.wantBalance, rec.Balance)
		})
	}
}

func TestRejectsNonPositivePoints(t *testing.T) {
	ledger, _, c := newLedger(t)

	_, _, err := ledger.Redeem(t.Context(), c.ID, nil, 0, "")
	require.EqualError(t, err, "points must be positive")

	_, _, err = ledger.Earn(t.Context(), c.ID, nil, -3, "")
	require.EqualError(t, err, "points must be positive")
}

func TestBalanceEqualsLedgerSum(t *testing.T) {
	ctx := t.Context()
	ledger, _, c := newLedger(t)

	rnd := rand.New(rand.NewPCG(7, 11))
	var want int64
	for range 100 {
		n := rnd.Int64N(50) + 1
		if rnd.IntN(3) == 0 {
			_, balance, err := ledger.Redeem(ctx, c.ID, nil, n, "redeem")
			if err != nil {
				require.ErrorIs(t, err, domain.ErrInsufficientPoints)
				continue
			}
			want -= n
			assert.Equal(t, want, balance)
			continue
		}
		_, balance, err := ledger.Earn(ctx, c.ID, nil, n, "earn")
		require.NoError(t, err)
		want += n
		assert.Equal(t, want, balance)
	}

	rec, err := ledger.Reconcile(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, want, rec.Balance)
	assert.Equal(t, want, rec.LedgerSum)
}

func TestEarnPoints(t *testing.T) {
	pizza, soda, dessert := uuid.New(), uuid.New(), uuid.New()
	rates := map[uuid.UUID]decimal.Decimal{
		pizza:   decimal.RequireFromString("1"),
		soda:    decimal.RequireFromString("0.5"),
		dessert: decimal.RequireFromString("2"),
	}

	lines := []domain.OrderLine{
		{ProductID: pizza, Subtotal: brl("42.90")},
		{ProductID: soda, Subtotal: brl("7.00")},
		{ProductID: dessert, Subtotal: brl("0"), RedeemedWithPoints: true, PointsCost: 30},
		{ProductID: uuid.New(), Subtotal: brl("100.00")},
	}

	// 42.90 + 3.50 = 46.40
	assert.Equal(t, int64(46), loyalty.EarnPoints(lines, rates))
	assert.Zero(t, loyalty.EarnPoints(nil, rates))
}

func TestCreditOrder(t *testing.T) {
	ctx := t.Context()
	ledger, store, c := newLedger(t)

	product := domain.Product{
		ID:            uuid.New(),
		StoreID:       c.StoreID,
		Name:          "Pizza",
		Price:         brl("30.00"),
		PointsPerUnit: decimal.NewFromInt(1),
		Active:        true,
	}
	require.NoError(t, store.CreateProduct(ctx, product))

	customerID := c.ID
	order := domain.Order{
		ID:         uuid.New(),
		StoreID:    c.StoreID,
		Number:     7,
		CustomerID: &customerID,
		Status:     domain.OrderStatusReady,
		Lines: []domain.OrderLine{
			{ProductID: product.ID, Quantity: 2, Subtotal: brl("60.00")},
		},
	}

	_, _, err := ledger.CreditOrder(ctx, order)
	require.Error(t, err)

	order.Status = domain.OrderStatusDelivered
	tx, ok, err := ledger.CreditOrder(ctx, order)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(60), tx.Delta)
	assert.Equal(t, "Pedido #7", tx.Description)

	_, _, err = ledger.CreditOrder(ctx, order)
	require.ErrorIs(t, err, domain.ErrAlreadyRecorded)

	got, err := store.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.Points)

	order.CustomerID = nil
	_, ok, err = ledger.CreditOrder(ctx, order)
	require.NoError(t, err)
	assert.False(t, ok)
}
