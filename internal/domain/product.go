package domain

import "time"

// Product is the catalog view of an item as published by the realtime feed.
// The cart copies price/stock/name from it at add-to-cart time.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	ImageURL  string    `json:"image_url,omitempty"`
	SellerID  string    `json:"seller_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
