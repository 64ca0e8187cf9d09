// Package cartstore keeps in-progress carts in Redis, one key per store and client session.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"math/rand/v2"
	"time"
)

const defaultTTL = 12 * time.Hour

type RedisStore struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) port.CartStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{
		client:  client,
		baseTTL: ttl,
	}
}

type cartLine struct {
	ProductID          uuid.UUID       `json:"product_id"`
	VariationID        *uuid.UUID      `json:"variation_id,omitempty"`
	ProductName        string          `json:"product_name"`
	VariationName      string          `json:"variation_name,omitempty"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Quantity           int             `json:"quantity"`
	RedeemedWithPoints bool            `json:"redeemed_with_points"`
	PointsCost         int64           `json:"points_cost"`
	PointsPerUnit      decimal.Decimal `json:"points_per_unit"`
}

type cart struct {
	StoreID  uuid.UUID  `json:"store_id"`
	Currency string     `json:"currency"`
	Lines    []cartLine `json:"lines"`
}

// GetCart returns domain.ErrNotFound when the session has no cart or it expired.
func (r *RedisStore) GetCart(ctx context.Context, storeID uuid.UUID, sessionID string) (domain.Cart, error) {
	data, err := r.client.Get(ctx, cacheKey(storeID, sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("redis get failed: %w", err)
	}

	var stored cart
	if err := json.Unmarshal(data, &stored); err != nil {
		return domain.Cart{}, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	return mapCart(stored)
}

func (r *RedisStore) SaveCart(ctx context.Context, storeID uuid.UUID, sessionID string, c domain.Cart) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is empty")
	}

	stored := cart{
		StoreID:  storeID,
		Currency: c.Currency.String(),
		Lines:    make([]cartLine, 0, len(c.Lines)),
	}
	for _, l := range c.Lines {
		stored.Lines = append(stored.Lines, cartLine{
			ProductID:          l.ProductID,
			VariationID:        l.VariationID,
			ProductName:        l.ProductName,
			VariationName:      l.VariationName,
			UnitPrice:          l.UnitPrice.Amount,
			Quantity:           l.Quantity,
			RedeemedWithPoints: l.RedeemedWithPoints,
			PointsCost:         l.PointsCost,
			PointsPerUnit:      l.PointsPerUnit,
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.IntN(5)) * time.Minute
	if err := r.client.Set(ctx, cacheKey(storeID, sessionID), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) ClearCart(ctx context.Context, storeID uuid.UUID, sessionID string) error {
	if err := r.client.Del(ctx, cacheKey(storeID, sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func mapCart(stored cart) (domain.Cart, error) {
	unit, err := currency.ParseISO(stored.Currency)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("currency.ParseISO: %w", err)
	}

	c := domain.Cart{
		StoreID:  stored.StoreID,
		Currency: unit,
		Lines:    make([]domain.CartLine, 0, len(stored.Lines)),
	}
	for _, l := range stored.Lines {
		c.Lines = append(c.Lines, domain.CartLine{
			ProductID:          l.ProductID,
			VariationID:        l.VariationID,
			ProductName:        l.ProductName,
			VariationName:      l.VariationName,
			UnitPrice:          domain.NewMoney(l.UnitPrice, unit),
			Quantity:           l.Quantity,
			RedeemedWithPoints: l.RedeemedWithPoints,
			PointsCost:         l.PointsCost,
			PointsPerUnit:      l.PointsPerUnit,
		})
	}
	return c, nil
}

func cacheKey(storeID uuid.UUID, sessionID string) string {
	return fmt.Sprintf("cart:%s:%s", storeID, sessionID)
}
