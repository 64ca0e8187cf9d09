package repository_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"testing"
	"time"
)

func (suite *repositorySuite) TestInsertOrder() {
	defer suite.deleteAll()

	store := suite.createStore(false)
	customer := suite.createCustomer(store.ID, 0)

	tests := []struct {
		name      string
		order     domain.Order
		wantError string
	}{
		{
			name:  "pickup order with single payment: ok",
			order: randomOrder(store.ID, &customer.ID),
		},
		{
			name: "delivery order with address and split payment: ok",
			order: func() domain.Order {
				o := randomOrder(store.ID, &customer.ID)
				o.IsDelivery = true
				o.DeliveryAddress = &domain.Address{
					Street:       gofakeit.Street(),
					Number:       gofakeit.StreetNumber(),
					Neighborhood: gofakeit.City(),
				}
				o.ScheduledTime = ptr(domain.NewTimeOfDay(19, 30))
				o.PaymentMode = domain.PaymentSplit
				half := o.Total.Amount.Div(decimal.NewFromInt(2)).Round(2)
				o.Payments = []domain.OrderPayment{
					{MethodName: "Pix", Amount: domain.NewMoney(half, currency.BRL)},
					{MethodName: "Cartão de Crédito", Amount: domain.NewMoney(o.Total.Amount.Sub(half), currency.BRL), CardMachineID: ptr(uuid.New())},
				}
				o.PaymentMethod = "Pix + Cartão de Crédito"
				return o
			}(),
		},
		{
			name: "anonymous order with change: ok",
			order: func() domain.Order {
				o := randomOrder(store.ID, nil)
				o.ChangeFor = ptr(domain.NewMoney(decimal.NewFromInt(100), currency.BRL))
				return o
			}(),
		},
		{
			name:      "order without store: error",
			order:     randomOrder(uuid.Nil, nil),
			wantError: "storeID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			inserted, err := suite.orders.InsertOrder(ctx, tt.order)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, inserted.Number)
			assert.False(t, inserted.CreatedAt.IsZero())

			got, err := suite.orders.GetOrder(ctx, inserted.ID)
			require.NoError(t, err)
			assertOrder(t, inserted, got)
		})
	}
}

func (suite *repositorySuite) TestOrderNumbersPerStore() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	first := suite.createStore(false)
	second := suite.createStore(false)

	for i := int64(1); i <= 3; i++ {
		o, err := suite.orders.InsertOrder(ctx, randomOrder(first.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, i, o.Number)
	}

	o, err := suite.orders.InsertOrder(ctx, randomOrder(second.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, int64(1), o.Number)
}

func (suite *repositorySuite) TestInsertOrderLines() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)
	order := suite.insertOrder(store, nil)

	lines := []domain.OrderLine{
		{
			ProductID:   uuid.New(),
			ProductName: gofakeit.ProductName(),
			UnitPrice:   domain.NewMoney(decimal.RequireFromString("10.00"), currency.BRL),
			Quantity:    2,
			Subtotal:    domain.NewMoney(decimal.RequireFromString("20.00"), currency.BRL),
		},
		{
			ProductID:          uuid.New(),
			VariationID:        ptr(uuid.New()),
			ProductName:        gofakeit.ProductName(),
			VariationName:      gofakeit.Color(),
			UnitPrice:          domain.Zero(currency.BRL),
			Quantity:           1,
			Subtotal:           domain.Zero(currency.BRL),
			RedeemedWithPoints: true,
			PointsCost:         5,
		},
	}

	require.NoError(t, suite.orders.InsertOrderLines(ctx, order.ID, lines))

	got, err := suite.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)

	for i := range lines {
		lines[i].OrderID = order.ID
	}
	diff := cmp.Diff(lines, got.Lines, currencyComparer, decimalComparer,
		cmpopts.IgnoreFields(domain.OrderLine{}, "ID"))
	assert.Empty(t, diff)
}

func (suite *repositorySuite) TestUpdateStatus() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)
	order := suite.insertOrder(store, nil)

	updated, err := suite.orders.UpdateStatus(ctx, order.ID, domain.OrderStatusPending, domain.OrderStatusPreparing)
	require.NoError(t, err)
	assert.True(t, updated)

	// stale from status
	updated, err = suite.orders.UpdateStatus(ctx, order.ID, domain.OrderStatusPending, domain.OrderStatusCancelled)
	require.NoError(t, err)
	assert.False(t, updated)

	got, err := suite.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, got.Status)
}

func (suite *repositorySuite) TestGetOrderNotFound() {
	t := suite.T()

	_, err := suite.orders.GetOrder(t.Context(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *repositorySuite) insertOrder(store domain.Store, customerID *uuid.UUID) domain.Order {
	t := suite.T()

	order, err := suite.orders.InsertOrder(t.Context(), randomOrder(store.ID, customerID))
	require.NoError(t, err)

	return order
}

func randomOrder(storeID uuid.UUID, customerID *uuid.UUID) domain.Order {
	subtotal := randomMoney()
	return domain.Order{
		ID:            uuid.New(),
		StoreID:       storeID,
		Channel:       domain.ChannelCashier,
		CustomerID:    customerID,
		CustomerName:  gofakeit.Name(),
		CustomerPhone: randomPhone(),
		Status:        domain.OrderStatusPending,
		Subtotal:      subtotal,
		Discount:      domain.Zero(currency.BRL),
		DeliveryFee:   domain.Zero(currency.BRL),
		Total:         subtotal,
		PaymentMethod: "Dinheiro",
		PaymentMode:   domain.PaymentSingle,
		Payments: []domain.OrderPayment{
			{MethodName: "Dinheiro", Amount: subtotal},
		},
		ScheduledDate: domain.DateOnly(time.Now().UTC()),
		Notes:         gofakeit.Sentence(4),
	}
}

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		currencyComparer,
		decimalComparer,
		cmpopts.EquateEmpty(),
		cmpopts.IgnoreFields(domain.Order{}, "CreatedAt", "UpdatedAt", "ScheduledDate"),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
	assert.True(t, domain.SameDate(expected.ScheduledDate, actual.ScheduledDate))
}
