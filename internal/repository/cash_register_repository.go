package repository

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/pdv-core/internal/db"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"golang.org/x/text/currency"
	"time"
)

type cashRegisterRepository struct {
	q    *db.Queries
	unit currency.Unit
}

// NewCashRegister reports session amounts in unit.
func NewCashRegister(pool *pgxpool.Pool, unit currency.Unit) port.CashRegisterRepository {
	return &cashRegisterRepository{
		q:    db.New(pool),
		unit: unit,
	}
}

func (r *cashRegisterRepository) GetOpenSession(ctx context.Context, storeID uuid.UUID) (domain.CashRegisterSession, error) {
	if storeID == uuid.Nil {
		return domain.CashRegisterSession{}, fmt.Errorf("storeID is empty")
	}

	row, err := r.q.GetOpenCashRegisterSession(ctx, storeID)
	if err != nil {
		return domain.CashRegisterSession{}, fmt.Errorf("q.GetOpenCashRegisterSession: %w", notFound(err))
	}

	return r.mapSessionToDomain(row), nil
}

func (r *cashRegisterRepository) OpenSession(ctx context.Context, session domain.CashRegisterSession) (domain.CashRegisterSession, error) {
	if session.StoreID == uuid.Nil {
		return domain.CashRegisterSession{}, fmt.Errorf("storeID is empty")
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	row, err := r.q.InsertCashRegisterSession(ctx, db.InsertCashRegisterSessionParams{
		ID:            session.ID,
		StoreID:       session.StoreID,
		OpenedAt:      session.OpenedAt,
		OpeningAmount: session.OpeningAmount.Amount,
	})
	if isUniqueViolation(err) {
		return domain.CashRegisterSession{}, domain.ErrRegisterAlreadyOpen
	}
	if err != nil {
		return domain.CashRegisterSession{}, fmt.Errorf("q.InsertCashRegisterSession: %w", err)
	}

	return r.mapSessionToDomain(row), nil
}

func (r *cashRegisterRepository) CloseSession(ctx context.Context, storeID uuid.UUID, closedAt time.Time, closingAmount domain.Money) (domain.CashRegisterSession, error) {
	if storeID == uuid.Nil {
		return domain.CashRegisterSession{}, fmt.Errorf("storeID is empty")
	}

	row, err := r.q.CloseCashRegisterSession(ctx, db.CloseCashRegisterSessionParams{
		StoreID:       storeID,
		ClosedAt:      &closedAt,
		ClosingAmount: &closingAmount.Amount,
	})
	if err != nil {
		return domain.CashRegisterSession{}, fmt.Errorf("q.CloseCashRegisterSession: %w", notFound(err))
	}

	return r.mapSessionToDomain(row), nil
}

func (r *cashRegisterRepository) mapSessionToDomain(row db.CashRegisterSession) domain.CashRegisterSession {
	session := domain.CashRegisterSession{
		ID:            row.ID,
		StoreID:       row.StoreID,
		OpenedAt:      row.OpenedAt,
		ClosedAt:      row.ClosedAt,
		OpeningAmount: domain.NewMoney(row.OpeningAmount, r.unit),
	}
	if row.ClosingAmount != nil {
		closing := domain.NewMoney(*row.ClosingAmount, r.unit)
		session.ClosingAmount = &closing
	}
	return session
}
