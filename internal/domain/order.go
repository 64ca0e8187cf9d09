package domain

import (
	"github.com/google/uuid"
	"time"
)

type Channel string

const (
	ChannelCashier Channel = "cashier"
	ChannelChat    Channel = "chat"
	ChannelStore   Channel = "store"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelCashier, ChannelChat, ChannelStore:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var nextStatus = map[OrderStatus]OrderStatus{
	OrderStatusPending:   OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusReady,
	OrderStatusReady:     OrderStatusDelivered,
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	if next, ok := nextStatus[s]; ok && next == to {
		return true
	}
	return false
}

// CountsTowardSales reports whether the order contributes to sales, loyalty earn
// and inactivity-based marketing.
func (s OrderStatus) CountsTowardSales() bool {
	return s == OrderStatusDelivered
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	switch st {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return st, true
	}
	return "", false
}

type Order struct {
	ID            uuid.UUID
	StoreID       uuid.UUID
	Number        int64
	Channel       Channel
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone string
	Status        OrderStatus

	Subtotal    Money
	Discount    Money
	DeliveryFee Money
	Total       Money
	PointsUsed  int64

	PaymentMethod string
	PaymentMode   PaymentMode
	Payments      []OrderPayment
	ChangeFor     *Money

	IsDelivery      bool
	DeliveryAddress *Address
	ScheduledDate   time.Time
	ScheduledTime   *TimeOfDay

	CouponID       *uuid.UUID
	CashRegisterID *uuid.UUID
	Notes          string

	Lines []OrderLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderPayment is the persisted form of a PaymentLeg.
type OrderPayment struct {
	MethodName    string
	MethodID      *uuid.UUID
	Amount        Money
	CardMachineID *uuid.UUID
}

// OrderLine is a snapshot of the cart line at order time, decoupled from the live catalog.
type OrderLine struct {
	ID                 uuid.UUID
	OrderID            uuid.UUID
	ProductID          uuid.UUID
	VariationID        *uuid.UUID
	ProductName        string
	VariationName      string
	UnitPrice          Money
	Quantity           int
	Subtotal           Money
	RedeemedWithPoints bool
	PointsCost         int64
}
