package api

import (
	"context"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/checkout"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/payment"
	"golang.org/x/text/currency"
	"net/http"
	"strings"
)

const (
	channelCashier = domain.ChannelCashier
	channelChat    = domain.ChannelChat
	channelStore   = domain.ChannelStore
)

// POST /stores/{storeID}/{cashier|chat|shop}/orders
func (h *Handler) placeOrder(channel domain.Channel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
		defer cancel()

		store, err := h.store(ctx, r)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		var body orderRequest
		if !decodeJSON(w, r, &body) {
			return
		}

		req, err := h.checkoutRequest(ctx, store, channel, body)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		res, err := h.Checkout.PlaceOrder(ctx, req)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		resp := toOrderResponse(res.Order, res.Steps)
		if res.Payment.ChangeDue.IsPositive() {
			resp.ChangeDue = amount(res.Payment.ChangeDue)
		}
		respondJSON(w, http.StatusCreated, resp)
	}
}

func (h *Handler) checkoutRequest(ctx context.Context, store domain.Store, channel domain.Channel, body orderRequest) (checkout.Request, error) {
	unit := store.Currency

	items, err := h.resolveItems(ctx, store.ID, body.SessionID, body.Items)
	if err != nil {
		return checkout.Request{}, err
	}
	cart, err := h.priceCart(ctx, store, items)
	if err != nil {
		return checkout.Request{}, err
	}

	delivery, err := body.Delivery.toInput(unit)
	if err != nil {
		return checkout.Request{}, err
	}
	date, err := parseDate(body.ScheduledDate)
	if err != nil {
		return checkout.Request{}, err
	}
	at, err := parseTime(body.ScheduledTime)
	if err != nil {
		return checkout.Request{}, err
	}
	discount, err := parseMoney(body.ManualDiscount, unit)
	if err != nil {
		return checkout.Request{}, err
	}
	pay, err := h.paymentInput(ctx, store.ID, unit, body.Payment)
	if err != nil {
		return checkout.Request{}, err
	}

	// self-service buyers get no manual discount and pay the store's delivery fee
	if channel == domain.ChannelStore {
		discount = domain.Zero(unit)
		if delivery != nil {
			delivery.Fee = store.StandardDeliveryFee()
		}
	}

	return checkout.Request{
		StoreID:        store.ID,
		Channel:        channel,
		SessionID:      body.SessionID,
		Cart:           cart,
		Customer:       checkout.CustomerInput{Name: body.Customer.Name, Phone: body.Customer.Phone},
		Delivery:       delivery,
		ScheduledDate:  date,
		ScheduledTime:  at,
		CouponCode:     strings.TrimSpace(body.CouponCode),
		ManualDiscount: discount,
		Payment:        pay,
		Notes:          body.Notes,
	}, nil
}

func (h *Handler) paymentInput(ctx context.Context, storeID uuid.UUID, unit currency.Unit, p paymentRequest) (checkout.PaymentInput, error) {
	var in checkout.PaymentInput

	switch mode := domain.PaymentMode(p.Mode); mode {
	case "", domain.PaymentSingle, domain.PaymentReserve, domain.PaymentSplit:
		in.Mode = mode
	default:
		return checkout.PaymentInput{}, badRequest(fmt.Sprintf("unknown payment mode %q", p.Mode))
	}

	if p.Method != "" {
		m, err := payment.ResolveMethod(ctx, h.Methods, storeID, p.Method)
		if err != nil {
			return checkout.PaymentInput{}, err
		}
		in.Single = &payment.LegInput{Method: m, CardMachineID: p.CardMachineID}
	}

	for _, s := range p.Splits {
		m, err := payment.ResolveMethod(ctx, h.Methods, storeID, s.Method)
		if err != nil {
			return checkout.PaymentInput{}, err
		}
		amt, err := parseMoney(s.Amount, unit)
		if err != nil {
			return checkout.PaymentInput{}, err
		}
		in.Splits = append(in.Splits, payment.LegInput{Method: m, Amount: amt, CardMachineID: s.CardMachineID})
	}

	if p.CashReceived != "" {
		cash, err := parseMoney(p.CashReceived, unit)
		if err != nil {
			return checkout.PaymentInput{}, err
		}
		in.CashReceived = &cash
	}

	return in, nil
}

// POST /stores/{storeID}/cart/review
func (h *Handler) ReviewCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	store, err := h.store(ctx, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var body reviewRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	rev, err := h.review(ctx, store, body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := reviewResponse{
		Totals:          toTotalsResponse(rev),
		CouponRejection: string(rev.CouponRejection),
	}
	if rev.Coupon != nil {
		resp.CouponCode = rev.Coupon.Code
		resp.FreeShipping = rev.Coupon.FreeShipping
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) review(ctx context.Context, store domain.Store, body reviewRequest) (checkout.Review, error) {
	items, err := h.resolveItems(ctx, store.ID, body.SessionID, body.Items)
	if err != nil {
		return checkout.Review{}, err
	}
	cart, err := h.priceCart(ctx, store, items)
	if err != nil {
		return checkout.Review{}, err
	}
	delivery, err := body.Delivery.toInput(store.Currency)
	if err != nil {
		return checkout.Review{}, err
	}
	discount, err := parseMoney(body.ManualDiscount, store.Currency)
	if err != nil {
		return checkout.Review{}, err
	}

	return h.Checkout.Review(ctx, checkout.ReviewRequest{
		StoreID:        store.ID,
		Cart:           cart,
		CustomerPhone:  body.CustomerPhone,
		Delivery:       delivery,
		CouponCode:     strings.TrimSpace(body.CouponCode),
		ManualDiscount: discount,
	})
}

// POST /orders/{orderID}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "orderID must be a uuid")
		return
	}

	var body statusRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	var order domain.Order
	if body.Status == "" {
		order, err = h.Orders.AdvanceNext(ctx, orderID)
	} else {
		to, ok := domain.ParseOrderStatus(body.Status)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid_status", fmt.Sprintf("unknown status %q", body.Status))
			return
		}
		order, err = h.Orders.Advance(ctx, orderID, to)
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order, nil))
}

// GET /stores/{storeID}/order-flow
func (h *Handler) OrderFlow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	storeID, err := storeIDParam(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	flow, err := h.Orders.ActiveFlow(ctx, storeID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := flowResponse{Statuses: make([]string, 0, len(flow))}
	for _, s := range flow {
		resp.Statuses = append(resp.Statuses, string(s))
	}
	respondJSON(w, http.StatusOK, resp)
}

func storeIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "storeID"))
	if err != nil {
		return uuid.Nil, badRequest("storeID must be a uuid")
	}
	return id, nil
}

func (h *Handler) store(ctx context.Context, r *http.Request) (domain.Store, error) {
	id, err := storeIDParam(r)
	if err != nil {
		return domain.Store{}, err
	}
	store, err := h.Stores.GetStore(ctx, id)
	if err != nil {
		return domain.Store{}, fmt.Errorf("stores.GetStore: %w", err)
	}
	return store, nil
}
