// Package payment validates how a payable total is settled and renders the
// payment description stored on the order.
package payment

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"strings"
)

// NoChargeMethodName describes orders that needed neither money nor points.
const NoChargeMethodName = "Sem cobrança"

type LegInput struct {
	Method        domain.PaymentMethod
	Amount        domain.Money
	CardMachineID *uuid.UUID
}

type Request struct {
	Channel        domain.Channel
	Mode           domain.PaymentMode
	PayableTotal   domain.Money
	PointsRequired int64

	// Single is used in single and reserve modes; its amount is ignored and
	// replaced with the payable total.
	Single *LegInput
	Splits []LegInput

	// CashReceived is the amount handed over for the cash leg, used to compute change due.
	CashReceived *domain.Money
}

// Allocate turns the request into a validated selection. All failures are
// validation errors raised before anything is written.
func Allocate(req Request) (domain.PaymentSelection, error) {
	zero := domain.Zero(req.PayableTotal.Currency)
	payable := req.PayableTotal.Round()

	mode := req.Mode
	if mode == "" {
		mode = domain.PaymentSingle
	}
	if mode == domain.PaymentSingle && req.Single != nil && req.Single.Method == domain.MethodReserve {
		mode = domain.PaymentReserve
	}

	switch mode {
	case domain.PaymentReserve:
		return allocateReserve(req, payable, zero)
	case domain.PaymentSplit:
		if payable.IsZero() {
			return domain.PaymentSelection{Mode: domain.PaymentSingle, ChangeDue: zero}, nil
		}
		return allocateSplit(req, payable, zero)
	case domain.PaymentSingle:
		return allocateSingle(req, payable, zero)
	default:
		return domain.PaymentSelection{}, fmt.Errorf("unknown payment mode %q", mode)
	}
}

func allocateReserve(req Request, payable, zero domain.Money) (domain.PaymentSelection, error) {
	switch {
	case req.PointsRequired > 0:
		return domain.PaymentSelection{}, domain.ErrReserveWithPoints
	case len(req.Splits) > 0:
		return domain.PaymentSelection{}, domain.ErrReserveWithSplit
	case req.CashReceived != nil:
		return domain.PaymentSelection{}, domain.ErrReserveWithChange
	}

	leg := domain.PaymentLeg{Method: domain.MethodReserve, Amount: payable}
	return domain.PaymentSelection{
		Mode:      domain.PaymentReserve,
		Legs:      []domain.PaymentLeg{leg},
		ChangeDue: zero,
	}, nil
}

func allocateSingle(req Request, payable, zero domain.Money) (domain.PaymentSelection, error) {
	sel := domain.PaymentSelection{Mode: domain.PaymentSingle, ChangeDue: zero}

	if payable.IsZero() {
		return sel, nil
	}
	if req.Single == nil || req.Single.Method == nil {
		return domain.PaymentSelection{}, domain.ErrNoPaymentMethod
	}
	if !req.Single.Method.AllowedOn(req.Channel) {
		return domain.PaymentSelection{}, domain.ErrMethodNotAllowed
	}

	sel.Legs = []domain.PaymentLeg{{
		Method:        req.Single.Method,
		Amount:        payable,
		CardMachineID: req.Single.CardMachineID,
	}}

	if req.CashReceived != nil && req.Single.Method == domain.MethodCash {
		received := req.CashReceived.Round()
		if received.LessThan(payable) {
			return domain.PaymentSelection{}, domain.ErrChangeBelowTotal
		}
		sel.CashReceived = &received
		sel.ChangeDue = received.Sub(payable)
	}

	return sel, nil
}

func allocateSplit(req Request, payable, zero domain.Money) (domain.PaymentSelection, error) {
	if len(req.Splits) == 0 {
		return domain.PaymentSelection{}, domain.ErrNoPaymentMethod
	}

	sel := domain.PaymentSelection{Mode: domain.PaymentSplit, ChangeDue: zero}
	cash := zero
	for i, in := range req.Splits {
		switch {
		case in.Method == nil:
			return domain.PaymentSelection{}, fmt.Errorf("split[%d]: %w", i, domain.ErrNoPaymentMethod)
		case in.Method == domain.MethodReserve:
			return domain.PaymentSelection{}, domain.ErrReserveWithSplit
		case !in.Method.AllowedOn(req.Channel):
			return domain.PaymentSelection{}, fmt.Errorf("split[%d]: %w", i, domain.ErrMethodNotAllowed)
		case !in.Amount.IsPositive():
			return domain.PaymentSelection{}, fmt.Errorf("split[%d]: %w: amount must be positive", i, domain.ErrSplitMismatch)
		}

		leg := domain.PaymentLeg{
			Method:        in.Method,
			Amount:        domain.NewMoney(in.Amount.Amount, payable.Currency).Round(),
			CardMachineID: in.CardMachineID,
		}
		if in.Method == domain.MethodCash {
			cash = cash.Add(leg.Amount)
		}
		sel.Legs = append(sel.Legs, leg)
	}

	if !sel.Total(zero).WithinTolerance(payable) {
		return domain.PaymentSelection{}, fmt.Errorf("%w: got %s, want %s",
			domain.ErrSplitMismatch, sel.Total(zero), payable)
	}

	if req.CashReceived != nil && cash.IsPositive() {
		received := req.CashReceived.Round()
		if received.LessThan(cash) {
			return domain.PaymentSelection{}, domain.ErrChangeBelowTotal
		}
		sel.CashReceived = &received
		sel.ChangeDue = received.Sub(cash)
	}

	return sel, nil
}

// Describe renders the payment_method text: "Fidelidade" first when points were
// redeemed, then each distinct monetary method in leg order.
func Describe(sel domain.PaymentSelection, pointsUsed int64) string {
	var names []string
	if pointsUsed > 0 {
		names = append(names, domain.LoyaltyMethodName)
	}

	seen := make(map[string]bool)
	for _, leg := range sel.Legs {
		name := leg.Method.MethodName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	if len(names) == 0 {
		return NoChargeMethodName
	}
	return strings.Join(names, " + ")
}

// ResolveMethod maps a client key to a payment method: a fixed method name such
// as "cash", or the id of a store-configured method.
func ResolveMethod(ctx context.Context, repo port.PaymentMethodRepository, storeID uuid.UUID, key string) (domain.PaymentMethod, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.ErrNoPaymentMethod
	}
	if m, ok := domain.ParseFixedMethod(strings.ToLower(key)); ok {
		return m, nil
	}

	id, err := uuid.Parse(key)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrNoPaymentMethod, key)
	}

	method, err := repo.GetPaymentMethod(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrNoPaymentMethod, key)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.GetPaymentMethod: %w", err)
	}
	if method.StoreID != storeID {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrNoPaymentMethod, key)
	}
	return method, nil
}
