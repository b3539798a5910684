package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)

	mux.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.HandleGetCart)
		r.Post("/items", h.HandleAddItem)
		r.Delete("/items/{productID}", h.HandleRemoveItem)
		r.Post("/items/{productID}/increase", h.HandleIncreaseQuantity)
		r.Post("/items/{productID}/decrease", h.HandleDecreaseQuantity)
		r.Put("/items/{productID}", h.HandleSetQuantity)
		r.Post("/coupon", h.HandleApplyCoupon)
		r.Post("/checkout", h.HandleCheckout)
	})

	mux.Get("/api/guitars", h.HandleListGuitars)
	mux.Get("/api/guitars/{productID}", h.HandleGetGuitar)
	mux.Post("/api/reviews", h.HandleCreateReview)
	mux.Get("/api/orders", h.HandleListOrders)

	return mux
}
