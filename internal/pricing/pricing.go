// Package pricing computes cart totals. Calculate is pure: the same input always
// yields the same totals and the payable total is never negative.
package pricing

import (
	"github.com/nikolayk812/pdv-core/internal/domain"
)

type Input struct {
	Cart           domain.Cart
	Delivery       bool
	DeliveryFee    domain.Money
	ManualDiscount domain.Money
	Coupon         *domain.CouponApplication
}

type Totals struct {
	MonetarySubtotal   domain.Money
	PointsRequired     int64
	DeliveryFeeApplied domain.Money
	DiscountApplied    domain.Money
	PayableTotal       domain.Money
}

func Calculate(in Input) Totals {
	zero := domain.Zero(in.Cart.Currency)

	subtotal := in.Cart.MonetarySubtotal().Round()

	fee := zero
	if in.Delivery && !(in.Coupon != nil && in.Coupon.FreeShipping) {
		fee = zero.Add(in.DeliveryFee).ClampZero().Round()
	}

	discount := zero.Add(in.ManualDiscount).ClampZero()
	if in.Coupon != nil {
		discount = discount.Add(in.Coupon.Discount)
	}
	discount = discount.Round()

	return Totals{
		MonetarySubtotal:   subtotal,
		PointsRequired:     in.Cart.PointsRequired(),
		DeliveryFeeApplied: fee,
		DiscountApplied:    discount,
		PayableTotal:       subtotal.Sub(discount).Add(fee).ClampZero().Round(),
	}
}
