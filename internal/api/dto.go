package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/checkout"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"time"
)

const dateLayout = "2006-01-02"

type cartItemRequest struct {
	ProductID        uuid.UUID  `json:"product_id"`
	VariationID      *uuid.UUID `json:"variation_id,omitempty"`
	Quantity         int        `json:"quantity"`
	RedeemWithPoints bool       `json:"redeem_with_points"`
}

type cartItemResponse struct {
	ProductID        uuid.UUID  `json:"product_id"`
	VariationID      *uuid.UUID `json:"variation_id,omitempty"`
	ProductName      string     `json:"product_name"`
	VariationName    string     `json:"variation_name,omitempty"`
	UnitPrice        string     `json:"unit_price"`
	Quantity         int        `json:"quantity"`
	RedeemWithPoints bool       `json:"redeem_with_points"`
	PointsCost       int64      `json:"points_cost"`
	LineTotal        string     `json:"line_total"`
}

type cartResponse struct {
	Currency       string             `json:"currency"`
	Items          []cartItemResponse `json:"items"`
	Subtotal       string             `json:"subtotal"`
	PointsRequired int64              `json:"points_required"`
}

type addressDTO struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Reference    string `json:"reference,omitempty"`
}

type deliveryRequest struct {
	Address     addressDTO `json:"address"`
	Fee         string     `json:"fee"`
	SaveAddress bool       `json:"save_address"`
}

type customerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type paymentLegRequest struct {
	Method        string     `json:"method"`
	Amount        string     `json:"amount"`
	CardMachineID *uuid.UUID `json:"card_machine_id,omitempty"`
}

type paymentRequest struct {
	Mode          string              `json:"mode"`
	Method        string              `json:"method"`
	CardMachineID *uuid.UUID          `json:"card_machine_id,omitempty"`
	Splits        []paymentLegRequest `json:"splits"`
	CashReceived  string              `json:"cash_received"`
}

type orderRequest struct {
	// SessionID names a stored cart used when Items is empty; it is cleared after the order is placed.
	SessionID      string            `json:"session_id"`
	Items          []cartItemRequest `json:"items"`
	Customer       customerRequest   `json:"customer"`
	Delivery       *deliveryRequest  `json:"delivery"`
	ScheduledDate  string            `json:"scheduled_date"`
	ScheduledTime  string            `json:"scheduled_time"`
	CouponCode     string            `json:"coupon_code"`
	ManualDiscount string            `json:"manual_discount"`
	Payment        paymentRequest    `json:"payment"`
	Notes          string            `json:"notes"`
}

type reviewRequest struct {
	SessionID      string            `json:"session_id"`
	Items          []cartItemRequest `json:"items"`
	CustomerPhone  string            `json:"customer_phone"`
	Delivery       *deliveryRequest  `json:"delivery"`
	CouponCode     string            `json:"coupon_code"`
	ManualDiscount string            `json:"manual_discount"`
}

type totalsResponse struct {
	Subtotal       string `json:"subtotal"`
	PointsRequired int64  `json:"points_required"`
	DeliveryFee    string `json:"delivery_fee"`
	Discount       string `json:"discount"`
	Total          string `json:"total"`
}

type reviewResponse struct {
	Totals          totalsResponse `json:"totals"`
	CouponCode      string         `json:"coupon_code,omitempty"`
	FreeShipping    bool           `json:"free_shipping"`
	CouponRejection string         `json:"coupon_rejection,omitempty"`
}

type orderPaymentResponse struct {
	Method        string     `json:"method"`
	Amount        string     `json:"amount"`
	CardMachineID *uuid.UUID `json:"card_machine_id,omitempty"`
}

type orderLineResponse struct {
	ProductID          uuid.UUID  `json:"product_id"`
	VariationID        *uuid.UUID `json:"variation_id,omitempty"`
	ProductName        string     `json:"product_name"`
	VariationName      string     `json:"variation_name,omitempty"`
	UnitPrice          string     `json:"unit_price"`
	Quantity           int        `json:"quantity"`
	Subtotal           string     `json:"subtotal"`
	RedeemedWithPoints bool       `json:"redeemed_with_points"`
}

type stepResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type orderResponse struct {
	ID             uuid.UUID              `json:"id"`
	StoreID        uuid.UUID              `json:"store_id"`
	Number         int64                  `json:"number"`
	Channel        string                 `json:"channel"`
	Status         string                 `json:"status"`
	CustomerID     *uuid.UUID             `json:"customer_id,omitempty"`
	CustomerName   string                 `json:"customer_name,omitempty"`
	Subtotal       string                 `json:"subtotal"`
	Discount       string                 `json:"discount"`
	DeliveryFee    string                 `json:"delivery_fee"`
	Total          string                 `json:"total"`
	PointsUsed     int64                  `json:"points_used"`
	PaymentMethod  string                 `json:"payment_method"`
	PaymentMode    string                 `json:"payment_mode"`
	Payments       []orderPaymentResponse `json:"payments"`
	ChangeDue      string                 `json:"change_due,omitempty"`
	IsDelivery     bool                   `json:"is_delivery"`
	ScheduledDate  string                 `json:"scheduled_date"`
	ScheduledTime  string                 `json:"scheduled_time,omitempty"`
	CouponID       *uuid.UUID             `json:"coupon_id,omitempty"`
	CashRegisterID *uuid.UUID             `json:"cash_register_id,omitempty"`
	Lines          []orderLineResponse    `json:"lines"`
	Steps          []stepResponse         `json:"steps,omitempty"`
}

type statusRequest struct {
	// Status empty advances to the next status of the store flow.
	Status string `json:"status"`
}

type flowResponse struct {
	Statuses []string `json:"statuses"`
}

type registerRequest struct {
	Amount string `json:"amount"`
}

type registerResponse struct {
	ID            uuid.UUID  `json:"id"`
	StoreID       uuid.UUID  `json:"store_id"`
	OpenedAt      time.Time  `json:"opened_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	OpeningAmount string     `json:"opening_amount"`
	ClosingAmount string     `json:"closing_amount,omitempty"`
}

type availabilityResponse struct {
	Date   string `json:"date"`
	Time   string `json:"time,omitempty"`
	Open   bool   `json:"open"`
	Reason string `json:"reason,omitempty"`
}

func amount(m domain.Money) string {
	return m.Amount.StringFixed(2)
}

// parseMoney reads a decimal string; empty means zero.
func parseMoney(s string, unit currency.Unit) (domain.Money, error) {
	if s == "" {
		return domain.Zero(unit), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return domain.Money{}, badRequest(fmt.Sprintf("invalid amount %q", s))
	}
	return domain.NewMoney(d, unit), nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, badRequest(fmt.Sprintf("invalid date %q, want YYYY-MM-DD", s))
	}
	return t, nil
}

func parseTime(s string) (*domain.TimeOfDay, error) {
	if s == "" {
		return nil, nil
	}
	t, err := domain.ParseTimeOfDay(s)
	if err != nil {
		return nil, badRequest(fmt.Sprintf("invalid time %q, want HH:MM", s))
	}
	return &t, nil
}

func (a addressDTO) toDomain() domain.Address {
	return domain.Address{
		Street:       a.Street,
		Number:       a.Number,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		Complement:   a.Complement,
		Reference:    a.Reference,
	}
}

func (d *deliveryRequest) toInput(unit currency.Unit) (*checkout.DeliveryInput, error) {
	if d == nil {
		return nil, nil
	}
	fee, err := parseMoney(d.Fee, unit)
	if err != nil {
		return nil, err
	}
	return &checkout.DeliveryInput{
		Address:     d.Address.toDomain(),
		Fee:         fee,
		SaveAddress: d.SaveAddress,
	}, nil
}

// priceCart builds a cart from the live catalog; client prices are never trusted.
func (h *Handler) priceCart(ctx context.Context, store domain.Store, items []cartItemRequest) (domain.Cart, error) {
	cart := domain.Cart{StoreID: store.ID, Currency: store.Currency}

	for i, item := range items {
		p, err := h.Catalog.GetProduct(ctx, item.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Cart{}, fmt.Errorf("item[%d]: %w: product %s not found", i, domain.ErrInvalidCart, item.ProductID)
		}
		if err != nil {
			return domain.Cart{}, fmt.Errorf("catalog.GetProduct: %w", err)
		}
		if p.StoreID != store.ID || !p.Active {
			return domain.Cart{}, fmt.Errorf("item[%d]: %w: product %s is not available", i, domain.ErrInvalidCart, p.ID)
		}

		var variation *domain.Variation
		if item.VariationID != nil {
			v, err := h.Catalog.GetVariation(ctx, *item.VariationID)
			if errors.Is(err, domain.ErrNotFound) || (err == nil && v.ProductID != p.ID) {
				return domain.Cart{}, fmt.Errorf("item[%d]: %w: variation %s not found", i, domain.ErrInvalidCart, *item.VariationID)
			}
			if err != nil {
				return domain.Cart{}, fmt.Errorf("catalog.GetVariation: %w", err)
			}
			variation = &v
		}

		cart.Lines = append(cart.Lines, domain.LineFromCatalog(p, variation, item.Quantity, item.RedeemWithPoints))
	}

	return cart, nil
}

// resolveItems returns the request items, falling back to the stored session cart.
func (h *Handler) resolveItems(ctx context.Context, storeID uuid.UUID, sessionID string, items []cartItemRequest) ([]cartItemRequest, error) {
	if len(items) > 0 || sessionID == "" || h.Carts == nil {
		return items, nil
	}

	stored, err := h.Carts.GetCart(ctx, storeID, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("carts.GetCart: %w", err)
	}

	out := make([]cartItemRequest, 0, len(stored.Lines))
	for _, l := range stored.Lines {
		out = append(out, cartItemRequest{
			ProductID:        l.ProductID,
			VariationID:      l.VariationID,
			Quantity:         l.Quantity,
			RedeemWithPoints: l.RedeemedWithPoints,
		})
	}
	return out, nil
}

func toCartResponse(c domain.Cart) cartResponse {
	resp := cartResponse{
		Currency:       c.Currency.String(),
		Items:          make([]cartItemResponse, 0, len(c.Lines)),
		Subtotal:       amount(c.MonetarySubtotal().Round()),
		PointsRequired: c.PointsRequired(),
	}
	for _, l := range c.Lines {
		resp.Items = append(resp.Items, cartItemResponse{
			ProductID:        l.ProductID,
			VariationID:      l.VariationID,
			ProductName:      l.ProductName,
			VariationName:    l.VariationName,
			UnitPrice:        amount(l.UnitPrice),
			Quantity:         l.Quantity,
			RedeemWithPoints: l.RedeemedWithPoints,
			PointsCost:       l.PointsCost,
			LineTotal:        amount(l.LineTotal().Round()),
		})
	}
	return resp
}

func toOrderResponse(o domain.Order, steps []checkout.StepOutcome) orderResponse {
	resp := orderResponse{
		ID:             o.ID,
		StoreID:        o.StoreID,
		Number:         o.Number,
		Channel:        string(o.Channel),
		Status:         string(o.Status),
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		Subtotal:       amount(o.Subtotal),
		Discount:       amount(o.Discount),
		DeliveryFee:    amount(o.DeliveryFee),
		Total:          amount(o.Total),
		PointsUsed:     o.PointsUsed,
		PaymentMethod:  o.PaymentMethod,
		PaymentMode:    string(o.PaymentMode),
		Payments:       make([]orderPaymentResponse, 0, len(o.Payments)),
		IsDelivery:     o.IsDelivery,
		CouponID:       o.CouponID,
		CashRegisterID: o.CashRegisterID,
		Lines:          make([]orderLineResponse, 0, len(o.Lines)),
	}
	if !o.ScheduledDate.IsZero() {
		resp.ScheduledDate = o.ScheduledDate.Format(dateLayout)
	}
	if o.ScheduledTime != nil {
		resp.ScheduledTime = o.ScheduledTime.String()
	}
	for _, p := range o.Payments {
		resp.Payments = append(resp.Payments, orderPaymentResponse{
			Method:        p.MethodName,
			Amount:        amount(p.Amount),
			CardMachineID: p.CardMachineID,
		})
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, orderLineResponse{
			ProductID:          l.ProductID,
			VariationID:        l.VariationID,
			ProductName:        l.ProductName,
			VariationName:      l.VariationName,
			UnitPrice:          amount(l.UnitPrice),
			Quantity:           l.Quantity,
			Subtotal:           amount(l.Subtotal),
			RedeemedWithPoints: l.RedeemedWithPoints,
		})
	}
	for _, s := range steps {
		step := stepResponse{Name: s.Name, Status: string(s.Status)}
		if s.Err != nil {
			step.Error = s.Err.Error()
		}
		resp.Steps = append(resp.Steps, step)
	}
	return resp
}

func toTotalsResponse(t checkout.Review) totalsResponse {
	return totalsResponse{
		Subtotal:       amount(t.Totals.MonetarySubtotal),
		PointsRequired: t.Totals.PointsRequired,
		DeliveryFee:    amount(t.Totals.DeliveryFeeApplied),
		Discount:       amount(t.Totals.DiscountApplied),
		Total:          amount(t.Totals.PayableTotal),
	}
}

func toRegisterResponse(s domain.CashRegisterSession) registerResponse {
	resp := registerResponse{
		ID:            s.ID,
		StoreID:       s.StoreID,
		OpenedAt:      s.OpenedAt,
		ClosedAt:      s.ClosedAt,
		OpeningAmount: amount(s.OpeningAmount),
	}
	if s.ClosingAmount != nil {
		resp.ClosingAmount = amount(*s.ClosingAmount)
	}
	return resp
}
