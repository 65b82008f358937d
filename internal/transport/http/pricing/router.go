package pricing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(h *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/quotes", h.QuoteOrder)
		r.Post("/orders", h.PlaceOrder)
		r.Post("/coupons/validate", h.ValidateCoupon)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/products/{id}/discount", h.ApplyDiscount)
			r.Put("/products/{id}/discount", h.UpdateDiscount)
			r.Delete("/products/{id}/discount", h.RemoveDiscount)
			r.Put("/products/{id}/price", h.UpdatePrice)
			r.Post("/coupons", h.CreateCoupon)
			r.Post("/coupons/{code}/deactivate", h.DeactivateCoupon)
			r.Post("/maintenance/purge-expired-discounts", h.PurgeExpiredDiscounts)
		})
	})
	return r
}
