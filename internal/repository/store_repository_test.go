package repository_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestOrderFlowSettings() {
	defer suite.deleteAll()

	tests := []struct {
		name        string
		skipPending bool
		wantInitial domain.OrderStatus
		wantFlow    []domain.OrderStatus
	}{
		{
			name:        "default flow starts pending: ok",
			wantInitial: domain.OrderStatusPending,
			wantFlow: []domain.OrderStatus{
				domain.OrderStatusPending, domain.OrderStatusPreparing,
				domain.OrderStatusReady, domain.OrderStatusDelivered,
			},
		},
		{
			name:        "skip pending starts preparing: ok",
			skipPending: true,
			wantInitial: domain.OrderStatusPreparing,
			wantFlow: []domain.OrderStatus{
				domain.OrderStatusPreparing, domain.OrderStatusReady, domain.OrderStatusDelivered,
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			store := suite.createStore(tt.skipPending)

			initial, err := suite.stores.InitialStatus(ctx, store.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantInitial, initial)

			flow, err := suite.stores.ActiveFlow(ctx, store.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlow, flow)

			got, err := suite.stores.GetStore(ctx, store.ID)
			require.NoError(t, err)
			diff := cmp.Diff(store, got, currencyComparer, decimalComparer, cmpopts.IgnoreFields(domain.Store{}, "CreatedAt"))
			assert.Empty(t, diff)
		})
	}
}

func (suite *repositorySuite) TestGetStoreNotFound() {
	t := suite.T()

	_, err := suite.stores.GetStore(t.Context(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
