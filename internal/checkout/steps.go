package checkout

import (
	"context"
	"errors"
	"fmt"
	"github.com/nikolayk812/pdv-core/internal/domain"
)

const (
	StepOrderLines  = "order_lines"
	StepStock       = "stock"
	StepLoyalty     = "loyalty"
	StepCouponUsage = "coupon_usage"
	StepAddress     = "address"
	StepCartCleanup = "cart_cleanup"
	StepNotify      = "notify"
	StepPrint       = "print"
)

type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
	// StepWarning means the step ran but left something for staff to reconcile.
	StepWarning StepStatus = "warning"
)

type StepOutcome struct {
	Name   string
	Status StepStatus
	Err    error
}

func succeeded() StepOutcome {
	return StepOutcome{Status: StepOK}
}

func skipped() StepOutcome {
	return StepOutcome{Status: StepSkipped}
}

func failed(err error) StepOutcome {
	return StepOutcome{Status: StepFailed, Err: err}
}

func warning(err error) StepOutcome {
	return StepOutcome{Status: StepWarning, Err: err}
}

func (s *Service) insertLines(ctx context.Context, order domain.Order) StepOutcome {
	if err := s.Orders.InsertOrderLines(ctx, order.ID, order.Lines); err != nil {
		return failed(fmt.Errorf("orders.InsertOrderLines: %w", err))
	}
	return succeeded()
}

// decrementStock floors every tracked counter at zero. A variation without its
// own stock falls back to the product counter. Untracked items are skipped.
func (s *Service) decrementStock(ctx context.Context, lines []domain.OrderLine) StepOutcome {
	var errs, shortfalls []error
	tracked := 0

	for i, line := range lines {
		var (
			dec domain.StockDecrement
			err error
		)
		if line.VariationID != nil {
			dec, err = s.Catalog.DecrementVariationStock(ctx, *line.VariationID, line.Quantity)
		}
		if line.VariationID == nil || errors.Is(err, domain.ErrNotFound) {
			dec, err = s.Catalog.DecrementProductStock(ctx, line.ProductID, line.Quantity)
		}

		switch {
		case errors.Is(err, domain.ErrNotFound):
			continue
		case err != nil:
			errs = append(errs, fmt.Errorf("line[%d] %s: %w", i, line.ProductName, err))
			continue
		}

		tracked++
		if short := dec.Shortfall(); short > 0 {
			shortfalls = append(shortfalls, fmt.Errorf("line[%d] %s: %w: short by %d",
				i, line.ProductName, domain.ErrInsufficientStock, short))
		}
	}

	switch {
	case len(errs) > 0:
		return failed(errors.Join(append(errs, shortfalls...)...))
	case len(shortfalls) > 0:
		return warning(errors.Join(shortfalls...))
	case tracked == 0:
		return skipped()
	}
	return succeeded()
}

func (s *Service) redeemPoints(ctx context.Context, order domain.Order) StepOutcome {
	if order.PointsUsed == 0 || order.CustomerID == nil {
		return skipped()
	}

	orderID := order.ID
	_, _, err := s.Ledger.Redeem(ctx, *order.CustomerID, &orderID, order.PointsUsed,
		fmt.Sprintf("Pedido #%d", order.Number))
	if err != nil {
		return failed(fmt.Errorf("ledger.Redeem: %w", err))
	}
	return succeeded()
}

// registerCoupon always records the usage, since the discount is already priced
// into the order. Crossing the ceiling here is reported as a warning.
func (s *Service) registerCoupon(ctx context.Context, order domain.Order, app *domain.CouponApplication) StepOutcome {
	if app == nil {
		return skipped()
	}

	res, err := s.Coupons.RegisterUsage(ctx, domain.CouponUsage{
		CouponID:      app.CouponID,
		OrderID:       order.ID,
		CustomerID:    order.CustomerID,
		CustomerPhone: order.CustomerPhone,
	})
	if err != nil {
		return failed(fmt.Errorf("coupons.RegisterUsage: %w", err))
	}
	if res.CeilingExceeded() {
		return warning(fmt.Errorf("coupon %s: %w: %d uses of %d", app.Code, domain.ErrCouponLimitReached, res.Uses, *res.MaxUses))
	}
	return succeeded()
}

func (s *Service) saveAddress(ctx context.Context, req Request, customer *domain.Customer) StepOutcome {
	if req.Delivery == nil || !req.Delivery.SaveAddress || customer == nil {
		return skipped()
	}
	if err := s.Addresses.SaveAddress(ctx, customer.ID, req.Delivery.Address); err != nil {
		return failed(fmt.Errorf("addresses.SaveAddress: %w", err))
	}
	return succeeded()
}

func (s *Service) clearCart(ctx context.Context, req Request) StepOutcome {
	if s.Carts == nil || req.SessionID == "" {
		return skipped()
	}
	if err := s.Carts.ClearCart(ctx, req.StoreID, req.SessionID); err != nil {
		return failed(fmt.Errorf("carts.ClearCart: %w", err))
	}
	return succeeded()
}

func (s *Service) notify(ctx context.Context, order domain.Order) StepOutcome {
	if s.Notifier == nil {
		return skipped()
	}
	ctx, cancel := context.WithTimeout(ctx, s.NotifyTimeout)
	defer cancel()

	if err := s.Notifier.NotifyOrderConfirmed(ctx, domain.ConfirmationOf(order)); err != nil {
		return failed(fmt.Errorf("notifier.NotifyOrderConfirmed: %w", err))
	}
	return succeeded()
}

func (s *Service) print(ctx context.Context, order domain.Order) StepOutcome {
	if s.Printer == nil {
		return skipped()
	}
	if err := s.Printer.PrintReceipt(ctx, order); err != nil {
		return failed(fmt.Errorf("printer.PrintReceipt: %w", err))
	}
	return succeeded()
}
