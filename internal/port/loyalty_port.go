package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
)

type LoyaltyRepository interface {
	// AppendTransaction writes the ledger row and moves the cached customer balance by
	// tx.Delta in one unit. A negative delta is applied only when the balance covers it,
	// otherwise domain.ErrInsufficientPoints. Returns the new balance.
	AppendTransaction(ctx context.Context, tx domain.LoyaltyTransaction) (domain.LoyaltyTransaction, int64, error)

	ListTransactions(ctx context.Context, customerID uuid.UUID) ([]domain.LoyaltyTransaction, error)

	SumDeltas(ctx context.Context, customerID uuid.UUID) (int64, error)
}
