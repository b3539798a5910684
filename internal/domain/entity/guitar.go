package entity

// Guitar is a catalog product as served by the shop API. The cart keeps its
// own copy of the product taken at the moment it was added, so later catalog
// price changes do not move items already in the cart.
type Guitar struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	VendorCode  string  `json:"vendorCode"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	PreviewImg  string  `json:"previewImg"`
	StringCount int     `json:"stringCount"`
	Rating      float64 `json:"rating"`
	Price       float64 `json:"price"`
}

// GuitarWithReviews is the product detail payload with embedded reviews.
type GuitarWithReviews struct {
	Guitar
	Comments []Review `json:"comments"`
}
