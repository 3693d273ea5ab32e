package domain

// LineItem is one product entry in a buyer's cart. Stock is the stock level
// recorded when the line was inserted; quantity never exceeds it.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Stock     int     `json:"stock"`
	ImageURL  string  `json:"image_url,omitempty"`
	SellerID  string  `json:"seller_id,omitempty"`
}

// Subtotal returns the line's price contribution.
func (l LineItem) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}
