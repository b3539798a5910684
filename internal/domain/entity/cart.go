package entity

import "errors"

var (
	// ErrItemNotFound indicates an operation targeted a product id that is
	// not present in the cart.
	ErrItemNotFound = errors.New("cart item not found")
	// ErrInvalidQuantity indicates a requested quantity below the minimum of one.
	ErrInvalidQuantity = errors.New("cart item quantity must be at least 1")
	// ErrEmptyCart indicates a checkout was attempted with no items in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// LineItem is one product entry in the cart. TotalPrice always equals
// Product.Price * Quantity and is recomputed on every transition, never
// derived lazily.
type LineItem struct {
	Product    Guitar  `json:"product"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
}

// CartState is a full cart snapshot: line items keyed by product id plus the
// aggregate fields derived from them. It is persisted and restored as a
// whole, not rebuilt from the items.
type CartState struct {
	Items                      map[int]LineItem `json:"items"`
	Coupon                     *string          `json:"coupon"`
	DiscountPercent            float64          `json:"discountPercent"`
	Discount                   float64          `json:"discount"`
	TotalCartPrice             float64          `json:"totalCartPrice"`
	TotalCartPriceWithDiscount float64          `json:"totalCartPriceWithDiscount"`
	ItemsQuantity              int              `json:"itemsQuantity"`
}

// EmptyCartState returns the default state a fresh session starts from.
func EmptyCartState() CartState {
	return CartState{Items: make(map[int]LineItem)}
}

// Clone returns a copy sharing no mutable memory with the receiver.
func (s CartState) Clone() CartState {
	next := s
	next.Items = make(map[int]LineItem, len(s.Items))
	for id, item := range s.Items {
		next.Items[id] = item
	}
	if s.Coupon != nil {
		coupon := *s.Coupon
		next.Coupon = &coupon
	}
	return next
}

func (s *CartState) refreshDiscount() {
	s.Discount, s.TotalCartPriceWithDiscount = ApplyDiscount(s.TotalCartPrice, s.DiscountPercent)
}
