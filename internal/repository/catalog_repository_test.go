package repository_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestDecrementProductStock() {
	defer suite.deleteAll()

	store := suite.createStore(false)

	tests := []struct {
		name      string
		stock     *int
		missing   bool
		quantity  int
		want      domain.StockDecrement
		wantErrIs error
		wantError string
	}{
		{
			name:     "enough stock: ok",
			stock:    ptr(10),
			quantity: 3,
			want:     domain.StockDecrement{Before: 10, After: 7, Requested: 3},
		},
		{
			name:     "exact stock: ok",
			stock:    ptr(4),
			quantity: 4,
			want:     domain.StockDecrement{Before: 4, After: 0, Requested: 4},
		},
		{
			name:     "more than stock floors at zero: ok",
			stock:    ptr(2),
			quantity: 5,
			want:     domain.StockDecrement{Before: 2, After: 0, Requested: 5},
		},
		{
			name:      "untracked stock: not found",
			stock:     nil,
			quantity:  1,
			wantErrIs: domain.ErrNotFound,
		},
		{
			name:      "missing product: not found",
			missing:   true,
			quantity:  1,
			wantErrIs: domain.ErrNotFound,
		},
		{
			name:      "zero quantity: error",
			stock:     ptr(1),
			quantity:  0,
			wantError: "quantity must be positive",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			id := uuid.New()
			if !tt.missing {
				id = suite.createProduct(store.ID, tt.stock).ID
			}

			got, err := suite.catalog.DecrementProductStock(ctx, id, tt.quantity)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Requested-tt.want.Before > 0, got.Shortfall() > 0)

			product, err := suite.catalog.GetProduct(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, product.Stock)
			assert.Equal(t, tt.want.After, *product.Stock)
		})
	}
}

func (suite *repositorySuite) TestDecrementStockNeverNegative() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)
	product := suite.createProduct(store.ID, ptr(5))

	for i := 0; i < 4; i++ {
		got, err := suite.catalog.DecrementProductStock(ctx, product.ID, gofakeit.IntRange(1, 4))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.After, 0)
	}

	got, err := suite.catalog.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, *got.Stock, 0)
}

func (suite *repositorySuite) TestVariations() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)
	product := suite.createProduct(store.ID, nil)

	variation := domain.Variation{
		ID:              uuid.New(),
		ProductID:       product.ID,
		Name:            gofakeit.Color(),
		PriceAdjustment: randomMoney(),
		Stock:           ptr(3),
	}
	require.NoError(t, suite.catalog.CreateVariation(ctx, variation))

	got, err := suite.catalog.GetVariation(ctx, variation.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(variation, got, currencyComparer, decimalComparer))

	dec, err := suite.catalog.DecrementVariationStock(ctx, variation.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.StockDecrement{Before: 3, After: 0, Requested: 5}, dec)
	assert.Equal(t, 2, dec.Shortfall())

	// product stock is untracked, so the product itself cannot be decremented
	_, err = suite.catalog.DecrementProductStock(ctx, product.ID, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *repositorySuite) TestPaymentMethods() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)

	method := domain.CustomMethod{
		ID:              uuid.New(),
		StoreID:         store.ID,
		Name:            "Vale Refeição",
		AllowedChannels: []domain.Channel{domain.ChannelCashier, domain.ChannelChat},
	}
	require.NoError(t, suite.methods.CreatePaymentMethod(ctx, method))

	got, err := suite.methods.GetPaymentMethod(ctx, method.ID)
	require.NoError(t, err)
	assert.Equal(t, method, got)
	assert.True(t, got.AllowedOn(domain.ChannelChat))
	assert.False(t, got.AllowedOn(domain.ChannelStore))

	list, err := suite.methods.ListPaymentMethods(ctx, store.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
