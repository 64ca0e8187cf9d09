package api

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"net/http"
)

// GET /stores/{storeID}/carts/{sessionID}
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	storeID, err := storeIDParam(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	cart, err := h.Carts.GetCart(ctx, storeID, chi.URLParam(r, "sessionID"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

// PUT /stores/{storeID}/carts/{sessionID}
func (h *Handler) SaveCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	store, err := h.store(ctx, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var body struct {
		Items []cartItemRequest `json:"items"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	cart, err := h.priceCart(ctx, store, body.Items)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := cart.Validate(); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.Carts.SaveCart(ctx, store.ID, chi.URLParam(r, "sessionID"), cart); err != nil {
		h.handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}

// DELETE /stores/{storeID}/carts/{sessionID}
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	storeID, err := storeIDParam(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.Carts.ClearCart(ctx, storeID, chi.URLParam(r, "sessionID")); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /stores/{storeID}/availability?date=YYYY-MM-DD&time=HH:MM
//
// A closed date or time is a normal answer here, not an error.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	storeID, err := storeIDParam(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	q := r.URL.Query()
	date, err := parseDate(q.Get("date"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if date.IsZero() {
		date = h.Gate.Today()
	}
	at, err := parseTime(q.Get("time"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := availabilityResponse{Date: date.Format(dateLayout), Open: true}
	if at != nil {
		resp.Time = at.String()
	}

	err = h.Gate.Check(ctx, storeID, date, at)
	switch {
	case errors.Is(err, domain.ErrDateClosed), errors.Is(err, domain.ErrOutsideHours):
		resp.Open = false
		resp.Reason = err.Error()
	case err != nil:
		h.handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// GET /stores/{storeID}/availability/next
func (h *Handler) NextAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	storeID, err := storeIDParam(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	date, err := h.Gate.NextOpenDate(ctx, storeID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, availabilityResponse{Date: date.Format(dateLayout), Open: true})
}

// POST /stores/{storeID}/cash-register/open
func (h *Handler) OpenRegister(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, http.StatusCreated, func(ctx context.Context, store domain.Store, amt domain.Money) (domain.CashRegisterSession, error) {
		return h.Binder.Open(ctx, store.ID, amt)
	})
}

// POST /stores/{storeID}/cash-register/close
func (h *Handler) CloseRegister(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, http.StatusOK, func(ctx context.Context, store domain.Store, amt domain.Money) (domain.CashRegisterSession, error) {
		return h.Binder.Close(ctx, store.ID, amt)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request, status int,
	op func(context.Context, domain.Store, domain.Money) (domain.CashRegisterSession, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	store, err := h.store(ctx, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var body registerRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	amt, err := parseMoney(body.Amount, store.Currency)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	sess, err := op(ctx, store, amt)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondJSON(w, status, toRegisterResponse(sess))
}
