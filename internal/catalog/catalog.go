package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/domain"

	"github.com/spf13/afero"
)

// Catalog exposes read-only lookups over an immutable in-process product
// dataset. Absent results are empty values, never errors.
type Catalog struct {
	products []domain.Product
	byID     map[string]domain.Product
}

// New builds a catalog from an already-loaded product list
func New(products []domain.Product) *Catalog {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// Load reads the product dataset from a JSON file
func Load(fs afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read product dataset: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse product dataset: %w", err)
	}

	return New(products), nil
}

// GetByID returns the product with the given id
func (c *Catalog) GetByID(id string) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// GetByCategory returns all products in the given category,
// matched case-insensitively
func (c *Catalog) GetByCategory(category string) []domain.Product {
	matched := []domain.Product{}
	for _, p := range c.products {
		if strings.EqualFold(p.Category, category) {
			matched = append(matched, p)
		}
	}
	return matched
}

// GetFeatured returns all products flagged as featured
func (c *Catalog) GetFeatured() []domain.Product {
	featured := []domain.Product{}
	for _, p := range c.products {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

// GetAll returns every product in dataset order
func (c *Catalog) GetAll() []domain.Product {
	all := make([]domain.Product, len(c.products))
	copy(all, c.products)
	return all
}
