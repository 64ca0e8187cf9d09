package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
)

type CouponRepository interface {
	GetCouponByCode(ctx context.Context, storeID uuid.UUID, code string) (domain.Coupon, error)

	CountCustomerUsages(ctx context.Context, couponID uuid.UUID, phone string) (int, error)

	// RegisterUsage records the usage and increments the coupon counter together.
	RegisterUsage(ctx context.Context, usage domain.CouponUsage) (domain.CouponUseResult, error)

	CreateCoupon(ctx context.Context, coupon domain.Coupon) error
}
