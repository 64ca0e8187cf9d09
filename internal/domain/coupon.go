package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID      uuid.UUID
	StoreID uuid.UUID
	Code    string

	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	FreeShipping  bool

	MinSubtotal decimal.Decimal
	// MaxUses is the coupon ceiling; nil means unlimited.
	MaxUses *int
	Uses    int

	Active    bool
	StartsAt  *time.Time
	ExpiresAt *time.Time

	// ProductIDs restricts the discount to these products; empty means the whole cart.
	ProductIDs []uuid.UUID
}

func (c Coupon) CeilingReached() bool {
	return c.MaxUses != nil && c.Uses >= *c.MaxUses
}

func (c Coupon) AppliesTo(productID uuid.UUID) bool {
	if len(c.ProductIDs) == 0 {
		return true
	}
	for _, id := range c.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

type CouponApplication struct {
	CouponID         uuid.UUID
	Code             string
	Discount         Money
	FreeShipping     bool
	EligibleSubtotal Money
}

type CouponUsage struct {
	ID            uuid.UUID
	CouponID      uuid.UUID
	OrderID       uuid.UUID
	CustomerID    *uuid.UUID
	CustomerPhone string
	CreatedAt     time.Time
}

// CouponUseResult is the counter state after a usage was registered.
type CouponUseResult struct {
	Uses    int
	MaxUses *int
}

func (r CouponUseResult) CeilingExceeded() bool {
	return r.MaxUses != nil && r.Uses > *r.MaxUses
}
