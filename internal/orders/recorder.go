package orders

import (
	"errors"
	"sync"
	"time"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// StatusCompleted is the fixed initial status of every recorded order.
// Compensating transitions (cancellation, refund) are out of scope.
const StatusCompleted = "completed"

// placeholderName stands in for products the catalog can no longer resolve
const placeholderName = "Producto desconocido"

// ProductCatalog is the read-only catalog view the recorder needs
type ProductCatalog interface {
	GetByID(id string) (domain.Product, bool)
}

// Persister saves and restores the append-only order log
type Persister interface {
	LoadOrders() []domain.Order
	SaveOrders(orders []domain.Order)
}

// Recorder snapshots carts into immutable order records at checkout time.
// Records are append-only; there are no update or delete operations.
type Recorder struct {
	catalog   ProductCatalog
	persister Persister

	mu     sync.Mutex
	orders []domain.Order
}

// NewRecorder creates a recorder hydrated from the persisted order log
func NewRecorder(catalog ProductCatalog, persister Persister) *Recorder {
	return &Recorder{
		catalog:   catalog,
		persister: persister,
		orders:    persister.LoadOrders(),
	}
}

// Record builds an immutable snapshot of the cart items and shipping
// address, appends it to the order log, and returns it. Product name and
// price are resolved at call time and captured by value, so later catalog
// changes never affect the record. Unresolvable products get a placeholder
// name and zero price.
func (r *Recorder) Record(
	orderID string,
	paymentRef string,
	address domain.ShippingAddress,
	items []domain.CartItem,
	total float64,
) domain.Order {
	snapshot := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		entry := domain.OrderItem{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			ProductName: placeholderName,
		}
		if product, ok := r.catalog.GetByID(item.ProductID); ok {
			entry.Price = product.Price
			entry.ProductName = product.Name
		}
		snapshot = append(snapshot, entry)
	}

	order := domain.Order{
		ID:              orderID,
		Total:           total,
		Status:          StatusCompleted,
		PaymentRef:      paymentRef,
		ShippingAddress: address,
		Items:           snapshot,
		CreatedAt:       time.Now().UTC(),
	}

	r.mu.Lock()
	r.orders = append(r.orders, order)
	log := make([]domain.Order, len(r.orders))
	copy(log, r.orders)
	r.mu.Unlock()

	r.persister.SaveOrders(log)
	return order
}

// ListAll returns every recorded order in insertion order
func (r *Recorder) ListAll() []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]domain.Order, len(r.orders))
	copy(orders, r.orders)
	return orders
}

// FindByID returns the order with the given id
func (r *Recorder) FindByID(orderID string) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.ID == orderID {
			return order, nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}
