package repository_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
)

func (suite *repositorySuite) TestGetCouponByCode() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)
	coupon := suite.createCoupon(store.ID, ptr(10))

	got, err := suite.coupons.GetCouponByCode(ctx, store.ID, strings.ToLower(coupon.Code))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(coupon, got, decimalComparer, cmpopts.EquateEmpty()))

	_, err = suite.coupons.GetCouponByCode(ctx, store.ID, "NOPE")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.coupons.GetCouponByCode(ctx, uuid.New(), coupon.Code)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *repositorySuite) TestRegisterUsage() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)
	coupon := suite.createCoupon(store.ID, ptr(1))
	phone := randomPhone()

	first := suite.insertOrder(store, nil)
	res, err := suite.coupons.RegisterUsage(ctx, domain.CouponUsage{
		CouponID:      coupon.ID,
		OrderID:       first.ID,
		CustomerPhone: phone,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Uses)
	assert.False(t, res.CeilingExceeded())

	// the same order cannot be counted twice
	_, err = suite.coupons.RegisterUsage(ctx, domain.CouponUsage{
		CouponID:      coupon.ID,
		OrderID:       first.ID,
		CustomerPhone: phone,
	})
	require.ErrorIs(t, err, domain.ErrAlreadyRecorded)

	// a concurrent order that was priced before the ceiling was reached is still recorded
	second := suite.insertOrder(store, nil)
	res, err = suite.coupons.RegisterUsage(ctx, domain.CouponUsage{
		CouponID:      coupon.ID,
		OrderID:       second.ID,
		CustomerPhone: randomPhone(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Uses)
	assert.True(t, res.CeilingExceeded())

	count, err := suite.coupons.CountCustomerUsages(ctx, coupon.ID, phone)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := suite.coupons.GetCouponByCode(ctx, store.ID, coupon.Code)
	require.NoError(t, err)
	assert.True(t, stored.CeilingReached())
}

func (suite *repositorySuite) createCoupon(storeID uuid.UUID, maxUses *int) domain.Coupon {
	t := suite.T()

	coupon := domain.Coupon{
		ID:            uuid.New(),
		StoreID:       storeID,
		Code:          "SAVE" + strings.ToUpper(uuid.NewString()[:6]),
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		FreeShipping:  true,
		MinSubtotal:   decimal.NewFromInt(20),
		MaxUses:       maxUses,
		Active:        true,
		ProductIDs:    []uuid.UUID{},
	}
	require.NoError(t, suite.coupons.CreateCoupon(t.Context(), coupon))

	return coupon
}
