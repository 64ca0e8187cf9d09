package repository

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/pdv-core/internal/db"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"strings"
)

type couponRepository struct {
	q       *db.Queries
	starter txStarter
}

func NewCoupon(pool *pgxpool.Pool) port.CouponRepository {
	return &couponRepository{
		q:       db.New(pool),
		starter: pool,
	}
}

func NewCouponWithTx(tx pgx.Tx) port.CouponRepository {
	return &couponRepository{
		q:       db.New(tx),
		starter: tx,
	}
}

func (r *couponRepository) GetCouponByCode(ctx context.Context, storeID uuid.UUID, code string) (domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Coupon{}, fmt.Errorf("code is empty")
	}

	row, err := r.q.GetCouponByCode(ctx, db.GetCouponByCodeParams{
		StoreID: storeID,
		Code:    code,
	})
	if err != nil {
		return domain.Coupon{}, fmt.Errorf("q.GetCouponByCode: %w", notFound(err))
	}

	return mapCouponToDomain(row), nil
}

func (r *couponRepository) CountCustomerUsages(ctx context.Context, couponID uuid.UUID, phone string) (int, error) {
	count, err := r.q.CountCustomerCouponUsages(ctx, db.CountCustomerCouponUsagesParams{
		CouponID:      couponID,
		CustomerPhone: domain.NormalizePhone(phone),
	})
	if err != nil {
		return 0, fmt.Errorf("q.CountCustomerCouponUsages: %w", err)
	}
	return int(count), nil
}

func (r *couponRepository) RegisterUsage(ctx context.Context, usage domain.CouponUsage) (domain.CouponUseResult, error) {
	if usage.CouponID == uuid.Nil {
		return domain.CouponUseResult{}, fmt.Errorf("couponID is empty")
	}
	if usage.OrderID == uuid.Nil {
		return domain.CouponUseResult{}, fmt.Errorf("orderID is empty")
	}
	if usage.ID == uuid.Nil {
		usage.ID = uuid.New()
	}

	return withTx(ctx, r.starter, func(q *db.Queries) (domain.CouponUseResult, error) {
		err := q.InsertCouponUsage(ctx, db.InsertCouponUsageParams{
			ID:            usage.ID,
			CouponID:      usage.CouponID,
			OrderID:       usage.OrderID,
			CustomerID:    usage.CustomerID,
			CustomerPhone: domain.NormalizePhone(usage.CustomerPhone),
		})
		if isUniqueViolation(err) {
			return domain.CouponUseResult{}, domain.ErrAlreadyRecorded
		}
		if err != nil {
			return domain.CouponUseResult{}, fmt.Errorf("q.InsertCouponUsage: %w", err)
		}

		row, err := q.IncrementCouponUses(ctx, usage.CouponID)
		if err != nil {
			return domain.CouponUseResult{}, fmt.Errorf("q.IncrementCouponUses: %w", notFound(err))
		}

		return domain.CouponUseResult{
			Uses:    int(row.Uses),
			MaxUses: intPtr(row.MaxUses),
		}, nil
	})
}

func (r *couponRepository) CreateCoupon(ctx context.Context, coupon domain.Coupon) error {
	if coupon.ID == uuid.Nil {
		return fmt.Errorf("couponID is empty")
	}

	var maxUses *int32
	if coupon.MaxUses != nil {
		v := int32(*coupon.MaxUses)
		maxUses = &v
	}

	productIDs := coupon.ProductIDs
	if productIDs == nil {
		productIDs = []uuid.UUID{}
	}

	err := r.q.CreateCoupon(ctx, db.CreateCouponParams{
		ID:            coupon.ID,
		StoreID:       coupon.StoreID,
		Code:          coupon.Code,
		DiscountType:  string(coupon.DiscountType),
		DiscountValue: coupon.DiscountValue,
		FreeShipping:  coupon.FreeShipping,
		MinSubtotal:   coupon.MinSubtotal,
		MaxUses:       maxUses,
		Uses:          int32(coupon.Uses),
		Active:        coupon.Active,
		StartsAt:      coupon.StartsAt,
		ExpiresAt:     coupon.ExpiresAt,
		ProductIds:    productIDs,
	})
	if err != nil {
		return fmt.Errorf("q.CreateCoupon: %w", err)
	}

	return nil
}

func mapCouponToDomain(row db.Coupon) domain.Coupon {
	return domain.Coupon{
		ID:            row.ID,
		StoreID:       row.StoreID,
		Code:          row.Code,
		DiscountType:  domain.DiscountType(row.DiscountType),
		DiscountValue: row.DiscountValue,
		FreeShipping:  row.FreeShipping,
		MinSubtotal:   row.MinSubtotal,
		MaxUses:       intPtr(row.MaxUses),
		Uses:          int(row.Uses),
		Active:        row.Active,
		StartsAt:      row.StartsAt,
		ExpiresAt:     row.ExpiresAt,
		ProductIDs:    row.ProductIds,
	}
}
