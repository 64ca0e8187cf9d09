// Package loyalty appends earn and redeem entries to the customer points ledger.
// The cached customer balance is authoritative; the ledger sums back to it.
package loyalty

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"github.com/shopspring/decimal"
)

type Ledger struct {
	repo      port.LoyaltyRepository
	customers port.CustomerRepository
	catalog   port.CatalogRepository
}

func NewLedger(repo port.LoyaltyRepository, customers port.CustomerRepository, catalog port.CatalogRepository) *Ledger {
	return &Ledger{
		repo:      repo,
		customers: customers,
		catalog:   catalog,
	}
}

// Redeem debits points only when the balance covers them, otherwise
// domain.ErrInsufficientPoints. Returns the new balance.
func (l *Ledger) Redeem(ctx context.Context, customerID uuid.UUID, orderID *uuid.UUID, points int64, description string) (domain.LoyaltyTransaction, int64, error) {
	if points <= 0 {
		return domain.LoyaltyTransaction{}, 0, fmt.Errorf("points must be positive")
	}

	tx, balance, err := l.repo.AppendTransaction(ctx, domain.LoyaltyTransaction{
		CustomerID:  customerID,
		OrderID:     orderID,
		Delta:       -points,
		Type:        domain.LoyaltyRedeem,
		Description: description,
	})
	if err != nil {
		return domain.LoyaltyTransaction{}, 0, fmt.Errorf("repo.AppendTransaction: %w", err)
	}
	return tx, balance, nil
}

func (l *Ledger) Earn(ctx context.Context, customerID uuid.UUID, orderID *uuid.UUID, points int64, description string) (domain.LoyaltyTransaction, int64, error) {
	if points <= 0 {
		return domain.LoyaltyTransaction{}, 0, fmt.Errorf("points must be positive")
	}

	tx, balance, err := l.repo.AppendTransaction(ctx, domain.LoyaltyTransaction{
		CustomerID:  customerID,
		OrderID:     orderID,
		Delta:       points,
		Type:        domain.LoyaltyEarn,
		Description: description,
	})
	if err != nil {
		return domain.LoyaltyTransaction{}, 0, fmt.Errorf("repo.AppendTransaction: %w", err)
	}
	return tx, balance, nil
}

// EarnPoints is the floor of the paid line value times the product earn rate,
// summed over the order. Redeemed lines earn nothing.
func EarnPoints(lines []domain.OrderLine, rates map[uuid.UUID]decimal.Decimal) int64 {
	total := decimal.Zero
	for _, line := range lines {
		if line.RedeemedWithPoints {
			continue
		}
		rate, ok := rates[line.ProductID]
		if !ok || !rate.IsPositive() {
			continue
		}
		total = total.Add(line.Subtotal.Amount.Mul(rate))
	}
	return total.Floor().IntPart()
}

// EarnForOrder computes the points a delivered order earns using the current
// product rates.
func (l *Ledger) EarnForOrder(ctx context.Context, order domain.Order) (int64, error) {
	rates := make(map[uuid.UUID]decimal.Decimal)
	for _, line := range order.Lines {
		if line.RedeemedWithPoints {
			continue
		}
		if _, ok := rates[line.ProductID]; ok {
			continue
		}

		p, err := l.catalog.GetProduct(ctx, line.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("catalog.GetProduct: %w", err)
		}
		rates[line.ProductID] = p.PointsPerUnit
	}
	return EarnPoints(order.Lines, rates), nil
}

// CreditOrder credits the earn for a delivered order once. Orders without a
// customer or with nothing to earn return ok=false.
func (l *Ledger) CreditOrder(ctx context.Context, order domain.Order) (domain.LoyaltyTransaction, bool, error) {
	if !order.Status.CountsTowardSales() {
		return domain.LoyaltyTransaction{}, false, fmt.Errorf("order %d is %s, not delivered", order.Number, order.Status)
	}
	if order.CustomerID == nil {
		return domain.LoyaltyTransaction{}, false, nil
	}

	points, err := l.EarnForOrder(ctx, order)
	if err != nil {
		return domain.LoyaltyTransaction{}, false, err
	}
	if points == 0 {
		return domain.LoyaltyTransaction{}, false, nil
	}

	orderID := order.ID
	tx, _, err := l.Earn(ctx, *order.CustomerID, &orderID, points, fmt.Sprintf("Pedido #%d", order.Number))
	if err != nil {
		return domain.LoyaltyTransaction{}, false, err
	}
	return tx, true, nil
}

type Reconciliation struct {
	CustomerID uuid.UUID
	Balance    int64
	LedgerSum  int64
}

func (r Reconciliation) Consistent() bool {
	return r.Balance == r.LedgerSum
}

// Reconcile reads the cached balance and the ledger sum for comparison.
func (l *Ledger) Reconcile(ctx context.Context, customerID uuid.UUID) (Reconciliation, error) {
	c, err := l.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return Reconciliation{}, fmt.Errorf("customers.GetCustomer: %w", err)
	}

	sum, err := l.repo.SumDeltas(ctx, customerID)
	if err != nil {
		return Reconciliation{}, fmt.Errorf("repo.SumDeltas: %w", err)
	}

	return Reconciliation{
		CustomerID: customerID,
		Balance:    c.Points,
		LedgerSum:  sum,
	}, nil
}
