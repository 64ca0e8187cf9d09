package repository_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestAppendTransaction() {
	defer suite.deleteAll()

	store := suite.createStore(false)

	tests := []struct {
		name        string
		initial     int64
		delta       int64
		txType      domain.LoyaltyType
		wantBalance int64
		wantErrIs   error
		wantError   string
	}{
		{
			name:        "earn: ok",
			initial:     0,
			delta:       15,
			txType:      domain.LoyaltyEarn,
			wantBalance: 15,
		},
		{
			name:        "redeem within balance: ok",
			initial:     20,
			delta:       -5,
			txType:      domain.LoyaltyRedeem,
			wantBalance: 15,
		},
		{
			name:        "redeem whole balance: ok",
			initial:     7,
			delta:       -7,
			txType:      domain.LoyaltyRedeem,
			wantBalance: 0,
		},
		{
			name:      "redeem above balance: insufficient points",
			initial:   3,
			delta:     -4,
			txType:    domain.LoyaltyRedeem,
			wantErrIs: domain.ErrInsufficientPoints,
		},
		{
			name:      "zero delta: error",
			delta:     0,
			txType:    domain.LoyaltyEarn,
			wantError: "delta is zero",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			customer := suite.createCustomer(store.ID, tt.initial)

			_, balance, err := suite.loyalty.AppendTransaction(ctx, domain.LoyaltyTransaction{
				CustomerID:  customer.ID,
				Delta:       tt.delta,
				Type:        tt.txType,
				Description: gofakeit.Sentence(3),
			})
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)

				// the rejected redeem leaves neither a ledger row nor a balance change
				stored, err := suite.customers.GetCustomer(ctx, customer.ID)
				require.NoError(t, err)
				assert.Equal(t, tt.initial, stored.Points)

				sum, err := suite.loyalty.SumDeltas(ctx, customer.ID)
				require.NoError(t, err)
				assert.Equal(t, tt.initial, sum)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, balance)

			stored, err := suite.customers.GetCustomer(ctx, customer.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, stored.Points)
		})
	}
}

func (suite *repositorySuite) TestLedgerBalanceConsistency() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)
	customer := suite.createCustomer(store.ID, 0)

	expected := int64(0)
	for i := 0; i < 20; i++ {
		delta := int64(gofakeit.IntRange(1, 30))
		txType := domain.LoyaltyEarn
		if i%3 == 2 {
			delta = -delta
			txType = domain.LoyaltyRedeem
		}

		_, _, err := suite.loyalty.AppendTransaction(ctx, domain.LoyaltyTransaction{
			CustomerID: customer.ID,
			Delta:      delta,
			Type:       txType,
		})
		if err != nil {
			require.ErrorIs(t, err, domain.ErrInsufficientPoints)
			continue
		}
		expected += delta
	}

	stored, err := suite.customers.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, expected, stored.Points)

	sum, err := suite.loyalty.SumDeltas(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Points, sum)

	txs, err := suite.loyalty.ListTransactions(ctx, customer.ID)
	require.NoError(t, err)
	var listed int64
	for _, tx := range txs {
		listed += tx.Delta
	}
	assert.Equal(t, sum, listed)
}

func (suite *repositorySuite) TestAppendTransactionOncePerOrder() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)
	customer := suite.createCustomer(store.ID, 0)
	order := suite.insertOrder(store, &customer.ID)

	earn := domain.LoyaltyTransaction{
		CustomerID: customer.ID,
		OrderID:    &order.ID,
		Delta:      10,
		Type:       domain.LoyaltyEarn,
	}

	_, balance, err := suite.loyalty.AppendTransaction(ctx, earn)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)

	_, _, err = suite.loyalty.AppendTransaction(ctx, earn)
	require.ErrorIs(t, err, domain.ErrAlreadyRecorded)

	stored, err := suite.customers.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Points)
}
