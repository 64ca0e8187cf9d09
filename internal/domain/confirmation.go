package domain

import (
	"github.com/google/uuid"
	"time"
)

// OrderConfirmation is the message sent to the customer once an order is committed.
type OrderConfirmation struct {
	OrderID       uuid.UUID
	StoreID       uuid.UUID
	OrderNumber   int64
	CustomerName  string
	CustomerPhone string
	Channel       Channel
	Status        OrderStatus
	Total         Money
	PaymentMethod string
	IsDelivery    bool
	ScheduledDate time.Time
	Message       string
}

// ConfirmationOf copies the customer-facing fields of a committed order; Message is left empty.
func ConfirmationOf(o Order) OrderConfirmation {
	return OrderConfirmation{
		OrderID:       o.ID,
		StoreID:       o.StoreID,
		OrderNumber:   o.Number,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Channel:       o.Channel,
		Status:        o.Status,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		IsDelivery:    o.IsDelivery,
		ScheduledDate: o.ScheduledDate,
	}
}
