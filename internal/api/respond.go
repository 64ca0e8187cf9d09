package api

import (
	"encoding/json"
	"errors"
	"github.com/nikolayk812/pdv-core/internal/coupon"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"go.uber.org/zap"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}

// handleError maps domain errors to HTTP statuses. Anything unclassified is
// logged and reported as an internal error.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *requestError

	switch {
	case errors.As(err, &reqErr):
		respondError(w, http.StatusBadRequest, "invalid_request", reqErr.msg)
	case domain.IsValidation(err):
		respondError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case domain.IsPrecondition(err):
		resp := ErrorResponse{Error: err.Error(), Code: "precondition_failed"}
		if reason, ok := coupon.ReasonOf(err); ok {
			resp.Code = "coupon_rejected"
			resp.Details = string(reason)
		}
		respondJSON(w, http.StatusConflict, resp)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoAvailability):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		h.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// requestError is a malformed request value that never reached the domain.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &requestError{msg: msg}
}
