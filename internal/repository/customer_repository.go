package repository

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/pdv-core/internal/db"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
)

type customerRepository struct {
	q *db.Queries
}

func NewCustomer(pool *pgxpool.Pool) port.CustomerRepository {
	return &customerRepository{
		q: db.New(pool),
	}
}

func NewCustomerWithTx(tx pgx.Tx) port.CustomerRepository {
	return &customerRepository{
		q: db.New(tx),
	}
}

func NewAddress(pool *pgxpool.Pool) port.AddressRepository {
	return &customerRepository{
		q: db.New(pool),
	}
}

func (r *customerRepository) GetCustomer(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	if id == uuid.Nil {
		return domain.Customer{}, fmt.Errorf("customerID is empty")
	}

	row, err := r.q.GetCustomer(ctx, id)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("q.GetCustomer: %w", notFound(err))
	}

	return mapCustomerToDomain(row), nil
}

func (r *customerRepository) GetCustomerByPhone(ctx context.Context, storeID uuid.UUID, phone string) (domain.Customer, error) {
	phone = domain.NormalizePhone(phone)
	if phone == "" {
		return domain.Customer{}, fmt.Errorf("phone is empty")
	}

	row, err := r.q.GetCustomerByPhone(ctx, db.GetCustomerByPhoneParams{
		StoreID: storeID,
		Phone:   phone,
	})
	if err != nil {
		return domain.Customer{}, fmt.Errorf("q.GetCustomerByPhone: %w", notFound(err))
	}

	return mapCustomerToDomain(row), nil
}

func (r *customerRepository) UpsertCustomer(ctx context.Context, storeID uuid.UUID, name, phone string) (domain.Customer, error) {
	phone = domain.NormalizePhone(phone)
	if phone == "" {
		return domain.Customer{}, fmt.Errorf("phone is empty")
	}

	row, err := r.q.UpsertCustomer(ctx, db.UpsertCustomerParams{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    name,
		Phone:   phone,
	})
	if err != nil {
		return domain.Customer{}, fmt.Errorf("q.UpsertCustomer: %w", err)
	}

	return mapCustomerToDomain(row), nil
}

func (r *customerRepository) SaveAddress(ctx context.Context, customerID uuid.UUID, address domain.Address) error {
	if customerID == uuid.Nil {
		return fmt.Errorf("customerID is empty")
	}
	if !address.IsComplete() {
		return domain.ErrAddressIncomplete
	}

	err := r.q.InsertCustomerAddress(ctx, db.InsertCustomerAddressParams{
		ID:           uuid.New(),
		CustomerID:   customerID,
		Street:       address.Street,
		Number:       address.Number,
		Neighborhood: address.Neighborhood,
		City:         address.City,
		Complement:   address.Complement,
		Reference:    address.Reference,
	})
	if err != nil {
		return fmt.Errorf("q.InsertCustomerAddress: %w", err)
	}

	return nil
}

func mapCustomerToDomain(row db.Customer) domain.Customer {
	return domain.Customer{
		ID:        row.ID,
		StoreID:   row.StoreID,
		Name:      row.Name,
		Phone:     row.Phone,
		Points:    row.Points,
		CreatedAt: row.CreatedAt,
	}
}
