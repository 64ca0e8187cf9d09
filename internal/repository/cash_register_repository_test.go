package repository_test

import (
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"time"
)

func (suite *repositorySuite) TestCashRegisterSessions() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)

	_, err := suite.registers.GetOpenSession(ctx, store.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	opened, err := suite.registers.OpenSession(ctx, domain.CashRegisterSession{
		StoreID:       store.ID,
		OpenedAt:      time.Now().UTC().Truncate(time.Microsecond),
		OpeningAmount: domain.NewMoney(decimal.NewFromInt(150), currency.BRL),
	})
	require.NoError(t, err)
	assert.True(t, opened.IsOpen())

	// at most one open session per store
	_, err = suite.registers.OpenSession(ctx, domain.CashRegisterSession{
		StoreID:  store.ID,
		OpenedAt: time.Now().UTC(),
	})
	require.ErrorIs(t, err, domain.ErrRegisterAlreadyOpen)

	current, err := suite.registers.GetOpenSession(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, current.ID)

	closed, err := suite.registers.CloseSession(ctx, store.ID, time.Now().UTC(),
		domain.NewMoney(decimal.RequireFromString("432.10"), currency.BRL))
	require.NoError(t, err)
	assert.False(t, closed.IsOpen())
	require.NotNil(t, closed.ClosingAmount)
	assert.True(t, closed.ClosingAmount.Amount.Equal(decimal.RequireFromString("432.10")))

	_, err = suite.registers.CloseSession(ctx, store.ID, time.Now().UTC(), domain.Zero(currency.BRL))
	require.ErrorIs(t, err, domain.ErrNotFound)

	// a new session can be opened once the previous one is closed
	_, err = suite.registers.OpenSession(ctx, domain.CashRegisterSession{
		StoreID:  store.ID,
		OpenedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
}
