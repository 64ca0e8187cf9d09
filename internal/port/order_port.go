package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
)

type OrderRepository interface {
	// InsertOrder allocates the store order number and persists the order with its payments.
	InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error)

	InsertOrderLines(ctx context.Context, orderID uuid.UUID, lines []domain.OrderLine) error

	GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error)

	// UpdateStatus moves the order from one status to another, returning false when
	// the order is no longer in the from status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error)
}

type OrderFlowSettings interface {
	InitialStatus(ctx context.Context, storeID uuid.UUID) (domain.OrderStatus, error)

	ActiveFlow(ctx context.Context, storeID uuid.UUID) ([]domain.OrderStatus, error)
}

type StoreRepository interface {
	OrderFlowSettings

	CreateStore(ctx context.Context, store domain.Store) error

	GetStore(ctx context.Context, id uuid.UUID) (domain.Store, error)
}
