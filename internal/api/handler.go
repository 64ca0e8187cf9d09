// Package api exposes order finalization and its supporting store operations over HTTP.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/pdv-core/internal/cashsession"
	"github.com/nikolayk812/pdv-core/internal/checkout"
	"github.com/nikolayk812/pdv-core/internal/orders"
	"github.com/nikolayk812/pdv-core/internal/port"
	"github.com/nikolayk812/pdv-core/internal/schedule"
	"go.uber.org/zap"
	"net/http"
	"time"
)

type Deps struct {
	Checkout *checkout.Service
	Orders   *orders.Service
	Binder   *cashsession.Binder
	Gate     *schedule.Gate

	Stores  port.StoreRepository
	Catalog port.CatalogRepository
	Methods port.PaymentMethodRepository
	Carts   port.CartStore

	Logger *zap.Logger
	// Timeout bounds each request; zero means 30s.
	Timeout time.Duration
}

type Handler struct {
	Deps
}

func NewHandler(deps Deps) *Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Timeout == 0 {
		deps.Timeout = 30 * time.Second
	}
	return &Handler{Deps: deps}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Logger))
	r.Use(middleware.Timeout(h.Timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/stores/{storeID}", func(r chi.Router) {
		r.Post("/cashier/orders", h.placeOrder(channelCashier))
		r.Post("/chat/orders", h.placeOrder(channelChat))
		r.Post("/shop/orders", h.placeOrder(channelStore))
		r.Post("/cart/review", h.ReviewCart)

		r.Route("/carts/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Put("/", h.SaveCart)
			r.Delete("/", h.ClearCart)
		})

		r.Get("/availability", h.Availability)
		r.Get("/availability/next", h.NextAvailable)

		r.Post("/cash-register/open", h.OpenRegister)
		r.Post("/cash-register/close", h.CloseRegister)

		r.Get("/order-flow", h.OrderFlow)
	})

	r.Post("/orders/{orderID}/status", h.UpdateStatus)

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
