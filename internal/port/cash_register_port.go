package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"time"
)

type CashRegisterRepository interface {
	// GetOpenSession returns domain.ErrNotFound when the store register is closed.
	GetOpenSession(ctx context.Context, storeID uuid.UUID) (domain.CashRegisterSession, error)

	// OpenSession returns domain.ErrRegisterAlreadyOpen when a session is already open.
	OpenSession(ctx context.Context, session domain.CashRegisterSession) (domain.CashRegisterSession, error)

	CloseSession(ctx context.Context, storeID uuid.UUID, closedAt time.Time, closingAmount domain.Money) (domain.CashRegisterSession, error)
}
