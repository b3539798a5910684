package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/guitarshop/cart-service/internal/adapter/shopapi"
	"github.com/guitarshop/cart-service/internal/domain/entity"
	"github.com/guitarshop/cart-service/internal/platform/logger"
	"github.com/guitarshop/cart-service/internal/repository"
	"github.com/guitarshop/cart-service/internal/service"
)

const recentOrdersLimit = 20

type Handler struct {
	cart     service.CartService
	checkout service.CheckoutService
	catalog  service.CatalogService
	reviews  service.ReviewService
	archive  repository.OrderArchiveRepository // optional
	log      logger.Logger
}

func NewHandler(
	cart service.CartService,
	checkout service.CheckoutService,
	catalog service.CatalogService,
	reviews service.ReviewService,
	archive repository.OrderArchiveRepository,
	log logger.Logger,
) *Handler {
	return &Handler{
		cart:     cart,
		checkout: checkout,
		catalog:  catalog,
		reviews:  reviews,
		archive:  archive,
		log:      log,
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func (h *Handler) respondWithError(w http.ResponseWriter, err error, defaultMessage string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrItemNotFound), errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidQuantity),
		errors.Is(err, entity.ErrInvalidReview),
		errors.Is(err, entity.ErrEmptyCart):
		status = http.StatusBadRequest
	case errors.Is(err, shopapi.ErrRemoteOperation):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		h.log.Errorf("%s: %v", defaultMessage, err)
	} else {
		h.log.Warnf("%s: %v", defaultMessage, err)
	}
	respondWithJSON(w, status, map[string]string{"error": err.Error()})
}

func productIDFromURL(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "productID"))
}

func (h *Handler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.cart.State())
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product entity.Guitar `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.cart.AddItem(r.Context(), req.Product)
	if err != nil {
		h.respondWithError(w, err, "Failed to add item to cart")
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDFromURL(r)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	state, err := h.cart.RemoveItem(r.Context(), productID)
	if err != nil {
		h.respondWithError(w, err, "Failed to remove item from cart")
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

func (h *Handler) HandleIncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDFromURL(r)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	state, err := h.cart.IncreaseQuantity(r.Context(), productID)
	if err != nil {
		h.respondWithError(w, err, "Failed to increase item quantity")
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

func (h *Handler) HandleDecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDFromURL(r)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	state, err := h.cart.DecreaseQuantity(r.Context(), productID)
	if err != nil {
		h.respondWithError(w, err, "Failed to decrease item quantity")
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

func (h *Handler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDFromURL(r)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.cart.SetQuantity(r.Context(), productID, req.Quantity)
	if err != nil {
		h.respondWithError(w, err, "Failed to set item quantity")
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

func (h *Handler) HandleApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Coupon string `json:"coupon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Coupon == "" {
		http.Error(w, "Coupon cannot be empty", http.StatusBadRequest)
		return
	}

	state, err := h.checkout.ApplyPromoCode(r.Context(), req.Coupon)
	if err != nil {
		h.respondWithError(w, err, "Failed to apply promo code")
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	// The receipt email is optional; a bodyless POST checks out without one.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.checkout.SubmitOrder(r.Context(), req.Email)
	if err != nil {
		h.respondWithError(w, err, "Failed to submit order")
		return
	}
	respondWithJSON(w, http.StatusCreated, order)
}

func (h *Handler) HandleListGuitars(w http.ResponseWriter, r *http.Request) {
	query := shopapi.GuitarQuery{
		Sort:  r.URL.Query().Get("_sort"),
		Order: r.URL.Query().Get("_order"),
	}

	guitars, err := h.catalog.ListGuitars(r.Context(), query)
	if err != nil {
		h.respondWithError(w, err, "Failed to list guitars")
		return
	}
	respondWithJSON(w, http.StatusOK, guitars)
}

func (h *Handler) HandleGetGuitar(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDFromURL(r)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	guitar, err := h.catalog.GetGuitar(r.Context(), productID)
	if err != nil {
		h.respondWithError(w, err, "Failed to get guitar")
		return
	}
	respondWithJSON(w, http.StatusOK, guitar)
}

func (h *Handler) HandleCreateReview(w http.ResponseWriter, r *http.Request) {
	var draft entity.ReviewDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	review, err := h.reviews.SubmitReview(r.Context(), draft)
	if err != nil {
		h.respondWithError(w, err, "Failed to submit review")
		return
	}
	respondWithJSON(w, http.StatusCreated, review)
}

func (h *Handler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		http.Error(w, "Order archive is not configured", http.StatusNotImplemented)
		return
	}

	orders, err := h.archive.ListRecent(r.Context(), recentOrdersLimit)
	if err != nil {
		h.respondWithError(w, err, "Failed to list orders")
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}
