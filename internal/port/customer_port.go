package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
)

type CustomerRepository interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (domain.Customer, error)

	GetCustomerByPhone(ctx context.Context, storeID uuid.UUID, phone string) (domain.Customer, error)

	// UpsertCustomer returns the existing customer for (store, phone) or creates one with zero points.
	UpsertCustomer(ctx context.Context, storeID uuid.UUID, name, phone string) (domain.Customer, error)
}

type AddressRepository interface {
	SaveAddress(ctx context.Context, customerID uuid.UUID, address domain.Address) error
}
