package repository

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/pdv-core/internal/db"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
)

type storeRepository struct {
	q *db.Queries
}

func NewStore(pool *pgxpool.Pool) port.StoreRepository {
	return &storeRepository{
		q: db.New(pool),
	}
}

func (r *storeRepository) CreateStore(ctx context.Context, store domain.Store) error {
	if store.ID == uuid.Nil {
		return fmt.Errorf("storeID is empty")
	}

	err := r.q.CreateStore(ctx, db.CreateStoreParams{
		ID:          store.ID,
		Name:        store.Name,
		Currency:    store.Currency.String(),
		SkipPending: store.SkipPending,
		DeliveryFee: store.DeliveryFee,
	})
	if err != nil {
		return fmt.Errorf("q.CreateStore: %w", err)
	}

	return nil
}

func (r *storeRepository) GetStore(ctx context.Context, id uuid.UUID) (domain.Store, error) {
	if id == uuid.Nil {
		return domain.Store{}, fmt.Errorf("storeID is empty")
	}

	row, err := r.q.GetStore(ctx, id)
	if err != nil {
		return domain.Store{}, fmt.Errorf("q.GetStore: %w", notFound(err))
	}

	unit, err := parseCurrency(row.Currency)
	if err != nil {
		return domain.Store{}, err
	}

	return domain.Store{
		ID:          row.ID,
		Name:        row.Name,
		Currency:    unit,
		SkipPending: row.SkipPending,
		DeliveryFee: row.DeliveryFee,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (r *storeRepository) InitialStatus(ctx context.Context, storeID uuid.UUID) (domain.OrderStatus, error) {
	store, err := r.GetStore(ctx, storeID)
	if err != nil {
		return "", err
	}
	return store.InitialStatus(), nil
}

func (r *storeRepository) ActiveFlow(ctx context.Context, storeID uuid.UUID) ([]domain.OrderStatus, error) {
	store, err := r.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return store.ActiveFlow(), nil
}
