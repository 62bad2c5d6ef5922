package domain

// Product represents a product in the static catalog dataset
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Featured    bool     `json:"featured"`
}
