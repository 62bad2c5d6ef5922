package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/domain"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/stock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrItemNotFound      = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductCatalog is the read-only catalog view the store needs
type ProductCatalog interface {
	GetByID(id string) (domain.Product, bool)
}

// Persister saves and restores cart state. Saves must never fail the
// caller; failures are the persister's to log and swallow.
type Persister interface {
	LoadCart() ([]domain.CartItem, map[string]int)
	SaveCart(items []domain.CartItem, adjustments map[string]int)
}

// Subscriber receives the post-commit line-item snapshot after every
// successful mutation. Delivery is fire-and-forget, no acknowledgment.
type Subscriber func(items []domain.CartItem)

// Line is a cart item joined with its resolved product. Product is nil
// when the catalog can no longer resolve the id.
type Line struct {
	domain.CartItem
	Product *domain.Product `json:"product"`
}

// View is the cart projection served to UI surfaces
type View struct {
	Items []Line  `json:"items"`
	Total float64 `json:"total"`
}

// Store mediates all cart mutations: it consults the catalog for pricing
// and availability, maintains the stock ledger, persists after every
// successful mutation, and notifies subscribers.
type Store struct {
	catalog   ProductCatalog
	persister Persister
	logger    *zap.Logger

	mu      sync.Mutex
	items   []domain.CartItem
	ledger  *stock.Ledger
	subs    map[int]Subscriber
	nextSub int
}

// NewStore creates a cart store hydrated from the persister
func NewStore(catalog ProductCatalog, persister Persister, logger *zap.Logger) *Store {
	items, adjustments := persister.LoadCart()

	// Drop any persisted line that violates the quantity invariant
	valid := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.Quantity >= 1 {
			valid = append(valid, item)
		}
	}

	return &Store{
		catalog:   catalog,
		persister: persister,
		logger:    logger,
		items:     valid,
		ledger:    stock.NewLedger(adjustments),
		subs:      make(map[int]Subscriber),
	}
}

// AddItem adds quantity units of a product to the cart. A quantity below 1
// is treated as 1. If a line for the product already exists its quantity is
// incremented, otherwise a new line is appended.
func (s *Store) AddItem(productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()

	product, ok := s.catalog.GetByID(productID)
	if !ok {
		s.mu.Unlock()
		return ErrProductNotFound
	}

	// Availability is checked before commit so a failed add leaves the
	// ledger untouched
	if s.ledger.Available(productID, product.Stock) < quantity {
		s.mu.Unlock()
		return ErrInsufficientStock
	}

	now := time.Now().UTC()
	merged := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity += quantity
			s.items[i].UpdatedAt = now
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, domain.CartItem{
			ID:        uuid.New().String(),
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   now,
			UpdatedAt: now,
		})
	}

	s.ledger.ApplyDelta(productID, -quantity)
	s.commitLocked()
	return nil
}

// UpdateQuantity sets a line item's quantity. A quantity of zero or less
// removes the item instead.
func (s *Store) UpdateQuantity(itemID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(itemID)
	}

	s.mu.Lock()

	idx := s.indexOfLocked(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrItemNotFound
	}

	item := s.items[idx]
	product, ok := s.catalog.GetByID(item.ProductID)
	if !ok {
		s.mu.Unlock()
		return ErrProductNotFound
	}

	// The item's own reservation is given back before re-checking
	if s.ledger.Available(item.ProductID, product.Stock)+item.Quantity < quantity {
		s.mu.Unlock()
		return ErrInsufficientStock
	}

	s.ledger.ApplyDelta(item.ProductID, item.Quantity-quantity)
	s.items[idx].Quantity = quantity
	s.items[idx].UpdatedAt = time.Now().UTC()

	s.commitLocked()
	return nil
}

// RemoveItem deletes a line item and restores its full reservation
func (s *Store) RemoveItem(itemID string) error {
	s.mu.Lock()

	idx := s.indexOfLocked(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrItemNotFound
	}

	item := s.items[idx]
	s.ledger.ApplyDelta(item.ProductID, item.Quantity)
	s.items = append(s.items[:idx], s.items[idx+1:]...)

	s.commitLocked()
	return nil
}

// Clear empties the cart, returning every reserved quantity to the ledger
func (s *Store) Clear() {
	s.mu.Lock()

	for _, item := range s.items {
		s.ledger.ApplyDelta(item.ProductID, item.Quantity)
	}
	s.items = []domain.CartItem{}

	s.commitLocked()
}

// Items returns a copy of the line items in insertion order
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsSnapshotLocked()
}

// ItemsWithProducts projects each line joined with its resolved product and
// the cart total. Unresolvable products yield a nil join and contribute
// nothing to the total.
func (s *Store) ItemsWithProducts() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{Items: make([]Line, 0, len(s.items))}
	for _, item := range s.items {
		line := Line{CartItem: item}
		if product, ok := s.catalog.GetByID(item.ProductID); ok {
			line.Product = &product
			view.Total += product.Price * float64(item.Quantity)
		}
		view.Items = append(view.Items, line)
	}

	return view
}

// ItemCount returns the sum of quantities across all line items
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// HasProduct reports whether any line item references the product
func (s *Store) HasProduct(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// GetItem returns the line item with the given id
func (s *Store) GetItem(itemID string) (domain.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOfLocked(itemID); idx >= 0 {
		return s.items[idx], true
	}
	return domain.CartItem{}, false
}

// AvailableStock returns the derived available stock for a product,
// 0 when the product is unknown
func (s *Store) AvailableStock(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.catalog.GetByID(productID)
	if !ok {
		return 0
	}
	return s.ledger.Available(productID, product.Stock)
}

// Adjustments returns a copy of the current stock-adjustment mapping
func (s *Store) Adjustments() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot()
}

// Subscribe registers a change subscriber and returns its deregistration
// function. Subscribers are invoked after every successful mutation with
// the committed item snapshot.
func (s *Store) Subscribe(sub Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Flush persists the current state unconditionally
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persister.SaveCart(s.itemsSnapshotLocked(), s.ledger.Snapshot())
}

// commitLocked persists the mutated state, releases the lock, and notifies
// subscribers with the committed snapshot. Must be called with the lock
// held; the lock is released on return.
func (s *Store) commitLocked() {
	items := s.itemsSnapshotLocked()
	adjustments := s.ledger.Snapshot()

	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}

	s.mu.Unlock()

	s.persister.SaveCart(items, adjustments)
	for _, sub := range subs {
		sub(items)
	}

	s.logger.Debug("Cart state committed",
		zap.Int("lines", len(items)),
		zap.Int("subscribers", len(subs)),
	)
}

func (s *Store) itemsSnapshotLocked() []domain.CartItem {
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) indexOfLocked(itemID string) int {
	for i := range s.items {
		if s.items[i].ID == itemID {
			return i
		}
	}
	return -1
}
