package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
)

type CatalogRepository interface {
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)

	GetVariation(ctx context.Context, id uuid.UUID) (domain.Variation, error)

	CreateProduct(ctx context.Context, product domain.Product) error

	CreateVariation(ctx context.Context, variation domain.Variation) error

	// DecrementProductStock subtracts quantity floored at zero.
	// Returns domain.ErrNotFound when the product is missing or does not track stock.
	DecrementProductStock(ctx context.Context, id uuid.UUID, quantity int) (domain.StockDecrement, error)

	DecrementVariationStock(ctx context.Context, id uuid.UUID, quantity int) (domain.StockDecrement, error)
}

type PaymentMethodRepository interface {
	GetPaymentMethod(ctx context.Context, id uuid.UUID) (domain.CustomMethod, error)

	ListPaymentMethods(ctx context.Context, storeID uuid.UUID) ([]domain.CustomMethod, error)

	CreatePaymentMethod(ctx context.Context, method domain.CustomMethod) error
}
