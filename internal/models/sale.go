package models

import "time"

// SaleItem represents a single line of a sale.
type SaleItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"` // Price at the time of sale
}

// Subtotal is quantity times unit price.
func (i SaleItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Sale represents units leaving the store in one transaction.
type Sale struct {
	ID        string     `json:"id"`
	Items     []SaleItem `json:"items"`
	Total     float64    `json:"total"`
	Staff     string     `json:"staff,omitempty"` // Username of who recorded the sale
	CreatedAt time.Time  `json:"created_at"`
}
