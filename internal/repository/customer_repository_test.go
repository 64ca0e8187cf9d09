package repository_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestUpsertCustomer() {
	defer suite.deleteAll()

	store := suite.createStore(false)

	tests := []struct {
		name      string
		phone     string
		wantError string
	}{
		{
			name:  "new phone creates customer: ok",
			phone: randomPhone(),
		},
		{
			name:  "formatted phone is normalized: ok",
			phone: "(11) 98765-4321",
		},
		{
			name:      "empty phone: error",
			phone:     " - ",
			wantError: "phone is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			first, err := suite.customers.UpsertCustomer(ctx, store.ID, gofakeit.Name(), tt.phone)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(0), first.Points)
			assert.Equal(t, domain.NormalizePhone(tt.phone), first.Phone)

			second, err := suite.customers.UpsertCustomer(ctx, store.ID, gofakeit.Name(), tt.phone)
			require.NoError(t, err)
			assert.Equal(t, first.ID, second.ID)

			byPhone, err := suite.customers.GetCustomerByPhone(ctx, store.ID, tt.phone)
			require.NoError(t, err)
			assert.Equal(t, first.ID, byPhone.ID)
		})
	}
}

func (suite *repositorySuite) TestGetCustomerByPhoneNotFound() {
	defer suite.deleteAll()

	t := suite.T()
	store := suite.createStore(false)

	_, err := suite.customers.GetCustomerByPhone(t.Context(), store.ID, randomPhone())
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.customers.GetCustomer(t.Context(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *repositorySuite) TestSaveAddress() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)
	customer := suite.createCustomer(store.ID, 0)

	err := suite.addresses.SaveAddress(ctx, customer.ID, domain.Address{
		Street:       gofakeit.Street(),
		Number:       gofakeit.StreetNumber(),
		Neighborhood: gofakeit.City(),
	})
	require.NoError(t, err)

	err = suite.addresses.SaveAddress(ctx, customer.ID, domain.Address{Street: gofakeit.Street()})
	require.ErrorIs(t, err, domain.ErrAddressIncomplete)
}
