package checkout_test

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/checkout"
	"github.com/nikolayk812/pdv-core/internal/coupon"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/shopspring/decimal"
)

func (suite *checkoutSuite) TestReviewWritesNothing() {
	ctx := suite.T().Context()
	f := suite.f

	c := domain.Coupon{
		ID:            uuid.New(),
		StoreID:       f.storeID,
		Code:          "FRETE10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		FreeShipping:  true,
		Active:        true,
	}
	suite.Require().NoError(f.store.CreateCoupon(ctx, c))

	pizza, err := f.product("Pizza Calabresa", "25.00", suite.stock(4))
	suite.Require().NoError(err)

	rev, err := f.svc.Review(ctx, checkout.ReviewRequest{
		StoreID:    f.storeID,
		Cart:       f.cart(paid(pizza, 2)),
		Delivery:   deliveryTo(),
		CouponCode: "FRETE10",
	})
	suite.Require().NoError(err)

	suite.Require().NotNil(rev.Coupon)
	suite.Empty(rev.CouponRejection)
	suite.Equal("5.00", rev.Totals.DiscountApplied.Amount.StringFixed(2))
	suite.Equal("0.00", rev.Totals.DeliveryFeeApplied.Amount.StringFixed(2))
	suite.Equal("45.00", rev.Totals.PayableTotal.Amount.StringFixed(2))

	suite.Empty(f.store.Orders())
	stored, err := f.store.GetCouponByCode(ctx, f.storeID, "FRETE10")
	suite.Require().NoError(err)
	suite.Equal(0, stored.Uses)
	p, err := f.store.GetProduct(ctx, pizza.ID)
	suite.Require().NoError(err)
	suite.Equal(4, *p.Stock)
}

func (suite *checkoutSuite) TestReviewReportsRejectedCoupon() {
	ctx := suite.T().Context()
	f := suite.f

	pizza, err := f.product("Pizza Margherita", "30.00", nil)
	suite.Require().NoError(err)

	rev, err := f.svc.Review(ctx, checkout.ReviewRequest{
		StoreID:    f.storeID,
		Cart:       f.cart(paid(pizza, 1)),
		Delivery:   deliveryTo(),
		CouponCode: "NAOEXISTE",
	})
	suite.Require().NoError(err)

	suite.Nil(rev.Coupon)
	suite.Equal(coupon.RejectNotFound, rev.CouponRejection)
	suite.Equal("8.00", rev.Totals.DeliveryFeeApplied.Amount.StringFixed(2))
	suite.Equal("38.00", rev.Totals.PayableTotal.Amount.StringFixed(2))
}

func (suite *checkoutSuite) TestReviewRejectsEmptyCart() {
	_, err := suite.f.svc.Review(suite.T().Context(), checkout.ReviewRequest{
		StoreID: suite.f.storeID,
		Cart:    suite.f.cart(),
	})
	suite.Require().ErrorIs(err, domain.ErrEmptyCart)
}
