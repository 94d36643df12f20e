package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/auth"
)

// NewRouter wires handlers and middleware. Location endpoints are public;
// everything touching orders requires a bearer token.
func NewRouter(orders *OrderHandler, location *LocationHandler, tokens *auth.TokenManager, lgr logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RecoveryMiddleware(lgr))
	r.Use(LoggingMiddleware(lgr))

	r.Route("/location", func(r chi.Router) {
		r.Get("/restaurants", location.NearbyRestaurants)
		r.Get("/reverse-geocode", location.ReverseGeocode)
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(tokens, lgr))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orders.CreateOrder)
			r.Get("/", orders.ListOrders)
			r.Get("/{orderID}", orders.GetOrder)
			r.Put("/{orderID}/status", orders.UpdateStatus)
			r.Put("/{orderID}/cancel", orders.CancelOrder)
			r.Get("/{orderID}/invoice", orders.GetInvoice)
		})

		r.Get("/restaurants/{restaurantID}/orders", orders.ListRestaurantOrders)
	})

	return r
}
