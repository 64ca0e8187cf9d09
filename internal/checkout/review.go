package checkout

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/coupon"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/pricing"
)

type ReviewRequest struct {
	StoreID        uuid.UUID
	Cart           domain.Cart
	CustomerPhone  string
	Delivery       *DeliveryInput
	CouponCode     string
	ManualDiscount domain.Money
}

// Review is a totals preview. A rejected coupon is reported in CouponRejection
// and the totals are computed without it.
type Review struct {
	Totals          pricing.Totals
	Coupon          *domain.CouponApplication
	CouponRejection coupon.Rejection
}

// Review prices the cart the same way PlaceOrder does without writing anything.
func (s *Service) Review(ctx context.Context, req ReviewRequest) (Review, error) {
	if req.StoreID == uuid.Nil {
		return Review{}, fmt.Errorf("storeID is empty")
	}
	if err := req.Cart.Validate(); err != nil {
		return Review{}, err
	}

	var out Review
	if req.CouponCode != "" {
		app, err := s.Evaluator.Evaluate(ctx, coupon.Request{
			Code:          req.CouponCode,
			StoreID:       req.StoreID,
			CustomerPhone: req.CustomerPhone,
			Cart:          req.Cart,
		})
		if reason, rejected := coupon.ReasonOf(err); rejected {
			out.CouponRejection = reason
		} else if err != nil {
			return Review{}, err
		} else {
			out.Coupon = &app
		}
	}

	in := pricing.Input{
		Cart:           req.Cart,
		ManualDiscount: req.ManualDiscount,
		Coupon:         out.Coupon,
	}
	if req.Delivery != nil {
		in.Delivery = true
		in.DeliveryFee = req.Delivery.Fee
	}
	out.Totals = pricing.Calculate(in)

	return out, nil
}
