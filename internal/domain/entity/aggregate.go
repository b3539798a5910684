package entity

// SumQuantity sums the quantities of all line items.
func SumQuantity(items map[int]LineItem) int {
	var total int
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// SumTotalPrice sums the line totals of all line items.
func SumTotalPrice(items map[int]LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.TotalPrice
	}
	return total
}

// ApplyDiscount computes the discount amount and the discounted total for a
// cart total and a discount percentage. A zero percentage yields a zero
// discount and leaves the total as is.
func ApplyDiscount(totalCartPrice, discountPercent float64) (discount, totalWithDiscount float64) {
	if discountPercent != 0 {
		discount = totalCartPrice * discountPercent / 100
	}
	totalWithDiscount = totalCartPrice
	if discount != 0 {
		totalWithDiscount = totalCartPrice - discount
	}
	return discount, totalWithDiscount
}
