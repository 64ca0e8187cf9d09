// Package cashsession ties orders to the open cash-register session of a store.
package cashsession

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"time"
)

type Binder struct {
	repo port.CashRegisterRepository
	loc  *time.Location
	now  func() time.Time
}

func NewBinder(repo port.CashRegisterRepository, loc *time.Location, now func() time.Time) *Binder {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Binder{repo: repo, loc: loc, now: now}
}

// Bind returns the session an order must be attached to. Only same-day
// non-delivery orders require an open session; same-day deliveries attach
// to one when present and future orders are never attached.
func (b *Binder) Bind(ctx context.Context, storeID uuid.UUID, orderDate time.Time, delivery bool) (*uuid.UUID, error) {
	if storeID == uuid.Nil {
		return nil, fmt.Errorf("storeID is empty")
	}

	y, m, d := orderDate.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, b.loc)
	if !domain.SameDate(day, b.now().In(b.loc)) {
		return nil, nil
	}

	sess, err := b.repo.GetOpenSession(ctx, storeID)
	if errors.Is(err, domain.ErrNotFound) {
		if delivery {
			return nil, nil
		}
		return nil, domain.ErrRegisterClosed
	}
	if err != nil {
		return nil, fmt.Errorf("repo.GetOpenSession: %w", err)
	}

	id := sess.ID
	return &id, nil
}

func (b *Binder) Current(ctx context.Context, storeID uuid.UUID) (domain.CashRegisterSession, error) {
	sess, err := b.repo.GetOpenSession(ctx, storeID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.CashRegisterSession{}, domain.ErrRegisterClosed
	}
	if err != nil {
		return domain.CashRegisterSession{}, fmt.Errorf("repo.GetOpenSession: %w", err)
	}
	return sess, nil
}

// Open starts a session; a store has at most one open session at a time.
func (b *Binder) Open(ctx context.Context, storeID uuid.UUID, openingAmount domain.Money) (domain.CashRegisterSession, error) {
	if storeID == uuid.Nil {
		return domain.CashRegisterSession{}, fmt.Errorf("storeID is empty")
	}
	if openingAmount.IsNegative() {
		return domain.CashRegisterSession{}, fmt.Errorf("%w: opening amount is negative", domain.ErrValidation)
	}

	sess, err := b.repo.OpenSession(ctx, domain.CashRegisterSession{
		ID:            uuid.New(),
		StoreID:       storeID,
		OpenedAt:      b.now(),
		OpeningAmount: openingAmount.Round(),
	})
	if err != nil {
		return domain.CashRegisterSession{}, fmt.Errorf("repo.OpenSession: %w", err)
	}
	return sess, nil
}

func (b *Binder) Close(ctx context.Context, storeID uuid.UUID, closingAmount domain.Money) (domain.CashRegisterSession, error) {
	if storeID == uuid.Nil {
		return domain.CashRegisterSession{}, fmt.Errorf("storeID is empty")
	}
	if closingAmount.IsNegative() {
		return domain.CashRegisterSession{}, fmt.Errorf("%w: closing amount is negative", domain.ErrValidation)
	}

	sess, err := b.repo.CloseSession(ctx, storeID, b.now(), closingAmount.Round())
	if errors.Is(err, domain.ErrNotFound) {
		return domain.CashRegisterSession{}, domain.ErrRegisterClosed
	}
	if err != nil {
		return domain.CashRegisterSession{}, fmt.Errorf("repo.CloseSession: %w", err)
	}
	return sess, nil
}
