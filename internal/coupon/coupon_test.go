package coupon_test

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/coupon"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"testing"
	"time"
)

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func brl(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), currency.BRL)
}

func TestEvaluate(t *testing.T) {
	storeID := uuid.New()
	pizza, soda := uuid.New(), uuid.New()

	cart := domain.Cart{
		StoreID:  storeID,
		Currency: currency.BRL,
		Lines: []domain.CartLine{
			{ProductID: pizza, UnitPrice: brl("40.00"), Quantity: 1},
			{ProductID: soda, UnitPrice: brl("5.00"), Quantity: 2},
		},
	}

	base := func(mutate func(c *domain.Coupon)) domain.Coupon {
		c := domain.Coupon{
			ID:            uuid.New(),
			StoreID:       storeID,
			Code:          "PROMO",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(10),
			Active:        true,
		}
		if mutate != nil {
			mutate(&c)
		}
		return c
	}

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name         string
		coupon       *domain.Coupon
		priorUse     bool
		code         string
		wantReason   coupon.Rejection
		wantDiscount string
		wantShipping bool
	}{
		{
			name:         "percentage on whole cart",
			coupon:       ptr(base(nil)),
			wantDiscount: "5.00",
		},
		{
			name:         "code is case insensitive",
			coupon:       ptr(base(nil)),
			code:         "promo",
			wantDiscount: "5.00",
		},
		{
			name: "percentage on restricted product",
			coupon: ptr(base(func(c *domain.Coupon) {
				c.ProductIDs = []uuid.UUID{soda}
			})),
			wantDiscount: "1.00",
		},
		{
			name: "fixed capped at eligible subtotal",
			coupon: ptr(base(func(c *domain.Coupon) {
				c.DiscountType = domain.DiscountFixed
				c.DiscountValue = decimal.NewFromInt(15)
				c.ProductIDs = []uuid.UUID{soda}
			})),
			wantDiscount: "10.00",
		},
		{
			name: "free shipping only",
			coupon: ptr(base(func(c *domain.Coupon) {
				c.DiscountType = domain.DiscountFixed
				c.DiscountValue = decimal.Zero
				c.FreeShipping = true
			})),
			wantDiscount: "0",
			wantShipping: true,
		},
		{
			name:       "unknown code",
			wantReason: coupon.RejectNotFound,
		},
		{
			name:       "inactive",
			coupon:     ptr(base(func(c *domain.Coupon) { c.Active = false })),
			wantReason: coupon.RejectInactive,
		},
		{
			name:       "not started yet",
			coupon:     ptr(base(func(c *domain.Coupon) { c.StartsAt = &future })),
			wantReason: coupon.RejectInactive,
		},
		{
			name:       "expired",
			coupon:     ptr(base(func(c *domain.Coupon) { c.ExpiresAt = &past })),
			wantReason: coupon.RejectExpired,
		},
		{
			name: "ceiling reached",
			coupon: ptr(base(func(c *domain.Coupon) {
				c.MaxUses = ptr(3)
				c.Uses = 3
			})),
			wantReason: coupon.RejectLimitReached,
		},
		{
			name:       "customer already used",
			coupon:     ptr(base(nil)),
			priorUse:   true,
			wantReason: coupon.RejectAlreadyUsed,
		},
		{
			name:       "below minimum subtotal",
			coupon:     ptr(base(func(c *domain.Coupon) { c.MinSubtotal = decimal.NewFromInt(60) })),
			wantReason: coupon.RejectBelowMinimum,
		},
		{
			name:       "restricted product not in cart",
			coupon:     ptr(base(func(c *domain.Coupon) { c.ProductIDs = []uuid.UUID{uuid.New()} })),
			wantReason: coupon.RejectProductMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			store := memstore.New()
			phone := "11999990000"

			if tt.coupon != nil {
				require.NoError(t, store.CreateCoupon(ctx, *tt.coupon))
				if tt.priorUse {
					_, err := store.RegisterUsage(ctx, domain.CouponUsage{
						CouponID: tt.coupon.ID, OrderID: uuid.New(), CustomerPhone: phone,
					})
					require.NoError(t, err)
				}
			}

			code := tt.code
			if code == "" {
				code = "PROMO"
			}

			ev := coupon.NewEvaluator(store, func() time.Time { return now })
			app, err := ev.Evaluate(ctx, coupon.Request{
				Code:          code,
				StoreID:       storeID,
				CustomerPhone: phone,
				Cart:          cart,
			})

			if tt.wantReason != "" {
				require.ErrorIs(t, err, domain.ErrCouponRejected)
				assert.True(t, domain.IsPrecondition(err))
				reason, ok := coupon.ReasonOf(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantReason, reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.coupon.ID, app.CouponID)
			assert.True(t, decimal.RequireFromString(tt.wantDiscount).Equal(app.Discount.Amount),
				"want %s, got %s", tt.wantDiscount, app.Discount.Amount)
			assert.Equal(t, tt.wantShipping, app.FreeShipping)
		})
	}
}

func TestEvaluateScenarioTenPercent(t *testing.T) {
	ctx := t.Context()
	store := memstore.New()
	storeID := uuid.New()

	c := domain.Coupon{
		ID:            uuid.New(),
		StoreID:       storeID,
		Code:          "FRETE10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		FreeShipping:  true,
		Active:        true,
	}
	require.NoError(t, store.CreateCoupon(ctx, c))

	app, err := coupon.NewEvaluator(store, nil).Evaluate(ctx, coupon.Request{
		Code:    "FRETE10",
		StoreID: storeID,
		Cart: domain.Cart{
			Currency: currency.BRL,
			Lines:    []domain.CartLine{{ProductID: uuid.New(), UnitPrice: brl("25.00"), Quantity: 2}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "5.00", app.Discount.Amount.StringFixed(2))
	assert.True(t, app.FreeShipping)
}

func TestEvaluateEmptyCode(t *testing.T) {
	_, err := coupon.NewEvaluator(memstore.New(), nil).Evaluate(t.Context(), coupon.Request{Code: "  "})
	require.EqualError(t, err, "code is empty")
}

func ptr[T any](v T) *T {
	return &v
}
