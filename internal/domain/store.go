package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"time"
)

type Store struct {
	ID       uuid.UUID
	Name     string
	Currency currency.Unit
	// SkipPending starts new orders in preparing instead of pending.
	SkipPending bool
	// DeliveryFee is charged on self-service deliveries, in Currency.
	DeliveryFee decimal.Decimal
	CreatedAt   time.Time
}

func (s Store) StandardDeliveryFee() Money {
	return NewMoney(s.DeliveryFee, s.Currency)
}

func (s Store) InitialStatus() OrderStatus {
	if s.SkipPending {
		return OrderStatusPreparing
	}
	return OrderStatusPending
}

// ActiveFlow is the ordered list of statuses an order moves through in the store monitor.
func (s Store) ActiveFlow() []OrderStatus {
	flow := []OrderStatus{OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered}
	if s.SkipPending {
		return flow[1:]
	}
	return flow
}
