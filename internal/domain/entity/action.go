package entity

import "fmt"

// Action is the closed set of cart transitions. Reduce dispatches on the
// concrete type; adding a variant means extending the switch there.
type Action interface {
	isCartAction()
}

// AddItem puts a product into the cart. A product already present merges:
// the transition behaves like IncreaseQuantity for that line.
type AddItem struct {
	Product Guitar
}

// RemoveItem deletes a line item entirely, whatever its quantity.
type RemoveItem struct {
	ProductID int
}

// IncreaseQuantity bumps a line's quantity by one.
type IncreaseQuantity struct {
	ProductID int
}

// DecreaseQuantity lowers a line's quantity by one. At quantity one the
// transition is a no-op: the item stays, nothing fails.
type DecreaseQuantity struct {
	ProductID int
}

// SetQuantity sets a line's quantity to an explicit value (minimum 1).
type SetQuantity struct {
	ProductID int
	Value     int
}

// SetCoupon records the active coupon code. Totals are untouched; the
// discount itself arrives through ApplyPromo after remote validation.
type SetCoupon struct {
	Code string
}

// ApplyPromo sets the discount percentage resolved for the active coupon.
// The discount is recomputed from the current cart total, so reapplying
// never stacks.
type ApplyPromo struct {
	DiscountPercent float64
}

// Clear resets the cart to the empty default.
type Clear struct{}

func (AddItem) isCartAction()          {}
func (RemoveItem) isCartAction()       {}
func (IncreaseQuantity) isCartAction() {}
func (DecreaseQuantity) isCartAction() {}
func (SetQuantity) isCartAction()      {}
func (SetCoupon) isCartAction()        {}
func (ApplyPromo) isCartAction()       {}
func (Clear) isCartAction()            {}

// Reduce applies one action to a state and returns the next state. It is
// pure: the input state is never mutated, and on error it is returned
// unchanged. After every successful transition the aggregate fields satisfy
//
//	TotalCartPrice == Σ Items[k].TotalPrice
//	ItemsQuantity  == Σ Items[k].Quantity
//	Discount       == TotalCartPrice * DiscountPercent / 100
//	TotalCartPriceWithDiscount == TotalCartPrice - Discount
func Reduce(state CartState, action Action) (CartState, error) {
	switch a := action.(type) {
	case AddItem:
		next := state.Clone()
		item, ok := next.Items[a.Product.ID]
		if !ok {
			item = LineItem{Product: a.Product, Quantity: 1, TotalPrice: a.Product.Price}
		} else {
			item.Quantity++
			item.TotalPrice += item.Product.Price
		}
		next.Items[a.Product.ID] = item
		next.ItemsQuantity++
		next.TotalCartPrice += item.Product.Price
		next.refreshDiscount()
		return next, nil

	case RemoveItem:
		item, ok := state.Items[a.ProductID]
		if !ok {
			return state, fmt.Errorf("%w: product %d", ErrItemNotFound, a.ProductID)
		}
		next := state.Clone()
		next.TotalCartPrice -= item.TotalPrice
		next.ItemsQuantity -= item.Quantity
		delete(next.Items, a.ProductID)
		next.refreshDiscount()
		return next, nil

	case IncreaseQuantity:
		item, ok := state.Items[a.ProductID]
		if !ok {
			return state, fmt.Errorf("%w: product %d", ErrItemNotFound, a.ProductID)
		}
		next := state.Clone()
		item.Quantity++
		item.TotalPrice += item.Product.Price
		next.Items[a.ProductID] = item
		next.ItemsQuantity++
		next.TotalCartPrice += item.Product.Price
		next.refreshDiscount()
		return next, nil

	case DecreaseQuantity:
		item, ok := state.Items[a.ProductID]
		if !ok {
			return state, fmt.Errorf("%w: product %d", ErrItemNotFound, a.ProductID)
		}
		if item.Quantity <= 1 {
			return state, nil
		}
		next := state.Clone()
		item.Quantity--
		item.TotalPrice -= item.Product.Price
		next.Items[a.ProductID] = item
		next.ItemsQuantity--
		next.TotalCartPrice -= item.Product.Price
		next.refreshDiscount()
		return next, nil

	case SetQuantity:
		item, ok := state.Items[a.ProductID]
		if !ok {
			return state, fmt.Errorf("%w: product %d", ErrItemNotFound, a.ProductID)
		}
		if a.Value < 1 {
			return state, fmt.Errorf("%w: got %d", ErrInvalidQuantity, a.Value)
		}
		next := state.Clone()
		item.Quantity = a.Value
		item.TotalPrice = item.Product.Price * float64(a.Value)
		next.Items[a.ProductID] = item
		// Full resummation here, unlike the delta-based transitions above.
		next.ItemsQuantity = SumQuantity(next.Items)
		next.TotalCartPrice = SumTotalPrice(next.Items)
		next.refreshDiscount()
		return next, nil

	case SetCoupon:
		next := state.Clone()
		code := a.Code
		next.Coupon = &code
		return next, nil

	case ApplyPromo:
		next := state.Clone()
		next.DiscountPercent = a.DiscountPercent
		next.refreshDiscount()
		return next, nil

	case Clear:
		return EmptyCartState(), nil

	default:
		return state, fmt.Errorf("unknown cart action %T", action)
	}
}
