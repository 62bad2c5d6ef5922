package domain

import "time"

// CartItem is a single line in the shopping cart. Quantity is always >= 1
// once persisted; a mutation that would drop it to zero removes the line.
type CartItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
