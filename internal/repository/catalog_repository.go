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

type catalogRepository struct {
	q *db.Queries
}

func NewCatalog(pool *pgxpool.Pool) port.CatalogRepository {
	return &catalogRepository{
		q: db.New(pool),
	}
}

func NewCatalogWithTx(tx pgx.Tx) port.CatalogRepository {
	return &catalogRepository{
		q: db.New(tx),
	}
}

func NewPaymentMethod(pool *pgxpool.Pool) port.PaymentMethodRepository {
	return &catalogRepository{
		q: db.New(pool),
	}
}

func (r *catalogRepository) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	if id == uuid.Nil {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	row, err := r.q.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", notFound(err))
	}

	product, err := mapProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return product, nil
}

// GetVariation prices the adjustment in the currency of the parent product.
func (r *catalogRepository) GetVariation(ctx context.Context, id uuid.UUID) (domain.Variation, error) {
	if id == uuid.Nil {
		return domain.Variation{}, fmt.Errorf("variationID is empty")
	}

	row, err := r.q.GetVariation(ctx, id)
	if err != nil {
		return domain.Variation{}, fmt.Errorf("q.GetVariation: %w", notFound(err))
	}

	product, err := r.GetProduct(ctx, row.ProductID)
	if err != nil {
		return domain.Variation{}, err
	}

	return domain.Variation{
		ID:              row.ID,
		ProductID:       row.ProductID,
		Name:            row.Name,
		PriceAdjustment: domain.NewMoney(row.PriceAdjustment, product.Price.Currency),
		Stock:           intPtr(row.Stock),
	}, nil
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product domain.Product) error {
	if product.ID == uuid.Nil {
		return fmt.Errorf("productID is empty")
	}

	err := r.q.CreateProduct(ctx, db.CreateProductParams{
		ID:            product.ID,
		StoreID:       product.StoreID,
		Name:          product.Name,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Stock:         int32Ptr(product.Stock),
		PointsCost:    product.PointsCost,
		PointsPerUnit: product.PointsPerUnit,
		Active:        product.Active,
	})
	if err != nil {
		return fmt.Errorf("q.CreateProduct: %w", err)
	}

	return nil
}

func (r *catalogRepository) CreateVariation(ctx context.Context, variation domain.Variation) error {
	if variation.ID == uuid.Nil {
		return fmt.Errorf("variationID is empty")
	}

	err := r.q.CreateVariation(ctx, db.CreateVariationParams{
		ID:              variation.ID,
		ProductID:       variation.ProductID,
		Name:            variation.Name,
		PriceAdjustment: variation.PriceAdjustment.Amount,
		Stock:           int32Ptr(variation.Stock),
	})
	if err != nil {
		return fmt.Errorf("q.CreateVariation: %w", err)
	}

	return nil
}

func (r *catalogRepository) DecrementProductStock(ctx context.Context, id uuid.UUID, quantity int) (domain.StockDecrement, error) {
	if quantity < 1 {
		return domain.StockDecrement{}, fmt.Errorf("quantity must be positive")
	}

	row, err := r.q.DecrementProductStock(ctx, db.DecrementProductStockParams{
		ID:       id,
		Quantity: int32(quantity),
	})
	if err != nil {
		return domain.StockDecrement{}, fmt.Errorf("q.DecrementProductStock: %w", notFound(err))
	}

	return domain.StockDecrement{
		Before:    int(row.StockBefore),
		After:     int(row.StockAfter),
		Requested: quantity,
	}, nil
}

func (r *catalogRepository) DecrementVariationStock(ctx context.Context, id uuid.UUID, quantity int) (domain.StockDecrement, error) {
	if quantity < 1 {
		return domain.StockDecrement{}, fmt.Errorf("quantity must be positive")
	}

	row, err := r.q.DecrementVariationStock(ctx, db.DecrementVariationStockParams{
		ID:       id,
		Quantity: int32(quantity),
	})
	if err != nil {
		return domain.StockDecrement{}, fmt.Errorf("q.DecrementVariationStock: %w", notFound(err))
	}

	return domain.StockDecrement{
		Before:    int(row.StockBefore),
		After:     int(row.StockAfter),
		Requested: quantity,
	}, nil
}

func (r *catalogRepository) GetPaymentMethod(ctx context.Context, id uuid.UUID) (domain.CustomMethod, error) {
	if id == uuid.Nil {
		return domain.CustomMethod{}, fmt.Errorf("paymentMethodID is empty")
	}

	row, err := r.q.GetPaymentMethod(ctx, id)
	if err != nil {
		return domain.CustomMethod{}, fmt.Errorf("q.GetPaymentMethod: %w", notFound(err))
	}

	return mapPaymentMethodToDomain(row), nil
}

func (r *catalogRepository) ListPaymentMethods(ctx context.Context, storeID uuid.UUID) ([]domain.CustomMethod, error) {
	rows, err := r.q.ListPaymentMethods(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("q.ListPaymentMethods: %w", err)
	}

	methods := make([]domain.CustomMethod, 0, len(rows))
	for _, row := range rows {
		methods = append(methods, mapPaymentMethodToDomain(row))
	}

	return methods, nil
}

func (r *catalogRepository) CreatePaymentMethod(ctx context.Context, method domain.CustomMethod) error {
	if method.ID == uuid.Nil {
		return fmt.Errorf("paymentMethodID is empty")
	}

	channels := make([]string, 0, len(method.AllowedChannels))
	for _, ch := range method.AllowedChannels {
		channels = append(channels, string(ch))
	}

	err := r.q.CreatePaymentMethod(ctx, db.CreatePaymentMethodParams{
		ID:              method.ID,
		StoreID:         method.StoreID,
		Name:            method.Name,
		AllowedChannels: channels,
	})
	if err != nil {
		return fmt.Errorf("q.CreatePaymentMethod: %w", err)
	}

	return nil
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	unit, err := parseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:            row.ID,
		StoreID:       row.StoreID,
		Name:          row.Name,
		Price:         domain.NewMoney(row.PriceAmount, unit),
		Stock:         intPtr(row.Stock),
		PointsCost:    row.PointsCost,
		PointsPerUnit: row.PointsPerUnit,
		Active:        row.Active,
	}, nil
}

func mapPaymentMethodToDomain(row db.PaymentMethod) domain.CustomMethod {
	channels := make([]domain.Channel, 0, len(row.AllowedChannels))
	for _, ch := range row.AllowedChannels {
		channels = append(channels, domain.Channel(ch))
	}

	return domain.CustomMethod{
		ID:              row.ID,
		StoreID:         row.StoreID,
		Name:            row.Name,
		AllowedChannels: channels,
	}
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	i := int32(*v)
	return &i
}
