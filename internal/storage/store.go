package storage

import (
	"encoding/json"
	"path/filepath"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/domain"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Storage file names under the data directory. Each holds one plain
// serialized collection, human-inspectable, no schema versioning.
const (
	cartFile   = "shopping_cart.json"
	stockFile  = "products_stock.json"
	ordersFile = "orders_local.json"
)

// Store persists cart state and order records to durable local files.
//
// Failure policy: missing or corrupt data on load yields empty defaults and
// never fails the caller; write failures are logged and swallowed, leaving
// the in-memory state authoritative for the rest of the session.
type Store struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger
}

// New creates a file-backed store rooted at dir, creating it if needed
func New(fs afero.Fs, dir string, logger *zap.Logger) *Store {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("Failed to create data directory, persistence degraded to memory-only",
			zap.String("dir", dir),
			zap.Error(err),
		)
	}
	return &Store{fs: fs, dir: dir, logger: logger}
}

// LoadCart reads the persisted line items and stock adjustments.
// Missing or corrupt files yield empty defaults.
func (s *Store) LoadCart() ([]domain.CartItem, map[string]int) {
	items := []domain.CartItem{}
	if !s.read(cartFile, &items) {
		items = []domain.CartItem{}
	}

	adjustments := map[string]int{}
	if !s.read(stockFile, &adjustments) {
		adjustments = map[string]int{}
	}

	return items, adjustments
}

// SaveCart writes the line items and stock adjustments to their
// respective files. Errors are logged, never returned.
func (s *Store) SaveCart(items []domain.CartItem, adjustments map[string]int) {
	s.write(cartFile, items)
	s.write(stockFile, adjustments)
}

// LoadOrders reads the persisted order log, empty on missing or corrupt data
func (s *Store) LoadOrders() []domain.Order {
	orders := []domain.Order{}
	if !s.read(ordersFile, &orders) {
		orders = []domain.Order{}
	}
	return orders
}

// SaveOrders writes the full order log
func (s *Store) SaveOrders(orders []domain.Order) {
	s.write(ordersFile, orders)
}

// read reports whether v now holds a clean decode of the file. False means
// the caller should reset to its empty default.
func (s *Store) read(name string, v interface{}) bool {
	path := filepath.Join(s.dir, name)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		// Absent state is the normal first-run case
		return true
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("Corrupt storage file, falling back to empty state",
			zap.String("file", name),
			zap.Error(err),
		)
		return false
	}

	return true
}

func (s *Store) write(name string, v interface{}) {
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.logger.Error("Failed to serialize storage file",
			zap.String("file", name),
			zap.Error(err),
		)
		return
	}

	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		s.logger.Error("Failed to write storage file, state remains memory-only",
			zap.String("file", name),
			zap.Error(err),
		)
	}
}
