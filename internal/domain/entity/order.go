package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is one purchased line of a submitted order.
type OrderItem struct {
	ProductID    int     `json:"productId" bson:"product_id"`
	ProductName  string  `json:"productName" bson:"product_name"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit" bson:"price_per_unit"`
	TotalPrice   float64 `json:"totalPrice" bson:"total_price"`
}

// Order is the payload submitted to the shop API at checkout and, once
// confirmed, the record kept in the local archive.
type Order struct {
	ID                string      `json:"id" bson:"_id"`
	Items             []OrderItem `json:"items" bson:"items"`
	Coupon            *string     `json:"coupon" bson:"coupon,omitempty"`
	DiscountPercent   float64     `json:"discountPercent" bson:"discount_percent"`
	Discount          float64     `json:"discount" bson:"discount"`
	TotalAmount       float64     `json:"totalAmount" bson:"total_amount"`
	TotalWithDiscount float64     `json:"totalWithDiscount" bson:"total_with_discount"`
	CreatedAt         time.Time   `json:"createdAt" bson:"created_at"`
}

// NewOrderFromCart builds an order payload from a cart snapshot. An empty
// cart cannot be ordered.
func NewOrderFromCart(state CartState) (*Order, error) {
	if len(state.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]OrderItem, 0, len(state.Items))
	for id, line := range state.Items {
		items = append(items, OrderItem{
			ProductID:    id,
			ProductName:  line.Product.Name,
			Quantity:     line.Quantity,
			PricePerUnit: line.Product.Price,
			TotalPrice:   line.TotalPrice,
		})
	}

	var coupon *string
	if state.Coupon != nil {
		code := *state.Coupon
		coupon = &code
	}

	return &Order{
		ID:                uuid.NewString(),
		Items:             items,
		Coupon:            coupon,
		DiscountPercent:   state.DiscountPercent,
		Discount:          state.Discount,
		TotalAmount:       state.TotalCartPrice,
		TotalWithDiscount: state.TotalCartPriceWithDiscount,
		CreatedAt:         time.Now().UTC(),
	}, nil
}
