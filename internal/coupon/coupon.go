package coupon

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"github.com/shopspring/decimal"
	"strings"
	"time"
)

type Rejection string

const (
	RejectNotFound        Rejection = "not found"
	RejectInactive        Rejection = "inactive"
	RejectExpired         Rejection = "expired"
	RejectLimitReached    Rejection = "usage limit reached"
	RejectAlreadyUsed     Rejection = "customer already used"
	RejectBelowMinimum    Rejection = "subtotal below minimum"
	RejectProductMismatch Rejection = "product not eligible"
)

type RejectionError struct {
	Code   string
	Reason Rejection
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("coupon %s rejected: %s", e.Code, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return domain.ErrCouponRejected
}

// ReasonOf extracts the rejection reason from err, if any.
func ReasonOf(err error) (Rejection, bool) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection.Reason, true
	}
	return "", false
}

type Request struct {
	Code          string
	StoreID       uuid.UUID
	CustomerPhone string
	Cart          domain.Cart
}

type Evaluator struct {
	repo port.CouponRepository
	now  func() time.Time
}

func NewEvaluator(repo port.CouponRepository, now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{repo: repo, now: now}
}

// Evaluate validates the code against the cart and returns the discount it grants.
// It never reserves a usage slot.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (domain.CouponApplication, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.CouponApplication{}, fmt.Errorf("code is empty")
	}

	c, err := e.repo.GetCouponByCode(ctx, req.StoreID, code)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.CouponApplication{}, reject(code, RejectNotFound)
	}
	if err != nil {
		return domain.CouponApplication{}, fmt.Errorf("repo.GetCouponByCode: %w", err)
	}

	now := e.now()
	switch {
	case !c.Active:
		return domain.CouponApplication{}, reject(c.Code, RejectInactive)
	case c.StartsAt != nil && now.Before(*c.StartsAt):
		return domain.CouponApplication{}, reject(c.Code, RejectInactive)
	case c.ExpiresAt != nil && !now.Before(*c.ExpiresAt):
		return domain.CouponApplication{}, reject(c.Code, RejectExpired)
	case c.CeilingReached():
		return domain.CouponApplication{}, reject(c.Code, RejectLimitReached)
	}

	if phone := domain.NormalizePhone(req.CustomerPhone); phone != "" {
		used, err := e.repo.CountCustomerUsages(ctx, c.ID, phone)
		if err != nil {
			return domain.CouponApplication{}, fmt.Errorf("repo.CountCustomerUsages: %w", err)
		}
		if used > 0 {
			return domain.CouponApplication{}, reject(c.Code, RejectAlreadyUsed)
		}
	}

	subtotal := req.Cart.MonetarySubtotal()
	if subtotal.Amount.LessThan(c.MinSubtotal) {
		return domain.CouponApplication{}, reject(c.Code, RejectBelowMinimum)
	}

	eligible, matched := eligibleSubtotal(c, req.Cart)
	if !matched {
		return domain.CouponApplication{}, reject(c.Code, RejectProductMismatch)
	}

	return domain.CouponApplication{
		CouponID:         c.ID,
		Code:             c.Code,
		Discount:         discount(c, eligible),
		FreeShipping:     c.FreeShipping,
		EligibleSubtotal: eligible,
	}, nil
}

// eligibleSubtotal sums paid lines the coupon applies to. matched is false when the
// coupon is restricted to products and none of them are in the cart.
func eligibleSubtotal(c domain.Coupon, cart domain.Cart) (domain.Money, bool) {
	total := domain.Zero(cart.Currency)
	matched := len(c.ProductIDs) == 0
	for _, l := range cart.Lines {
		if !c.AppliesTo(l.ProductID) {
			continue
		}
		matched = true
		total = total.Add(l.LineTotal())
	}
	return total, matched
}

func discount(c domain.Coupon, eligible domain.Money) domain.Money {
	var amount domain.Money
	switch c.DiscountType {
	case domain.DiscountPercentage:
		amount = domain.NewMoney(eligible.Amount.Mul(c.DiscountValue).Div(decimal.NewFromInt(100)), eligible.Currency)
	case domain.DiscountFixed:
		amount = domain.NewMoney(c.DiscountValue, eligible.Currency)
	default:
		return domain.Zero(eligible.Currency)
	}
	return amount.Min(eligible).ClampZero().Round()
}

func reject(code string, reason Rejection) error {
	return &RejectionError{Code: code, Reason: reason}
}
