package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
)

// CartStore keeps in-progress carts per store and client session.
type CartStore interface {
	GetCart(ctx context.Context, storeID uuid.UUID, sessionID string) (domain.Cart, error)

	SaveCart(ctx context.Context, storeID uuid.UUID, sessionID string, cart domain.Cart) error

	ClearCart(ctx context.Context, storeID uuid.UUID, sessionID string) error
}
