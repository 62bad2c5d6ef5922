package domain

import "time"

// ShippingAddress is the flat address record captured at checkout
type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderItem is an immutable by-value snapshot of a cart line at checkout
// time. Later catalog or price changes never affect it.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ProductName string  `json:"product_name"`
}

// Order is a write-once record appended to the order log at checkout
type Order struct {
	ID              string          `json:"id"`
	Total           float64         `json:"total"`
	Status          string          `json:"status"`
	PaymentRef      string          `json:"payment_ref"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}
