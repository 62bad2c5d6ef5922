package storage

import (
	"testing"
	"time"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return New(fs, "data", zap.NewNop()), fs
}

func TestStore_FirstRunYieldsEmptyDefaults(t *testing.T) {
	store, _ := newTestStore(t)

	items, adjustments := store.LoadCart()
	assert.Empty(t, items)
	assert.Empty(t, adjustments)
	assert.Empty(t, store.LoadOrders())
}

func TestStore_CartRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	now := time.Now().UTC().Truncate(time.Second)
	items := []domain.CartItem{
		{ID: "i1", ProductID: "p1", Quantity: 2, AddedAt: now, UpdatedAt: now},
		{ID: "i2", ProductID: "p2", Quantity: 1, AddedAt: now, UpdatedAt: now},
	}
	adjustments := map[string]int{"p1": -2, "p2": -1}

	store.SaveCart(items, adjustments)

	loadedItems, loadedAdjustments := store.LoadCart()
	require.Len(t, loadedItems, 2)
	assert.Equal(t, items[0].ID, loadedItems[0].ID)
	assert.Equal(t, items[1].ProductID, loadedItems[1].ProductID)
	assert.Equal(t, adjustments, loadedAdjustments)
}

func TestStore_OrdersRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	order := domain.Order{
		ID:     "o1",
		Total:  49.98,
		Status: "completed",
		Items:  []domain.OrderItem{{ProductID: "p1", Quantity: 2, Price: 24.99, ProductName: "Vela"}},
	}
	store.SaveOrders([]domain.Order{order})

	loaded := store.LoadOrders()
	require.Len(t, loaded, 1)
	assert.Equal(t, order.ID, loaded[0].ID)
	assert.Equal(t, order.Items, loaded[0].Items)
}

func TestStore_CorruptFilesFallBackToEmptyState(t *testing.T) {
	store, fs := newTestStore(t)

	require.NoError(t, afero.WriteFile(fs, "data/shopping_cart.json", []byte(`[{"id": "i1",`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "data/products_stock.json", []byte(`not json at all`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "data/orders_local.json", []byte(`{"wrong": "shape"}`), 0o644))

	items, adjustments := store.LoadCart()
	assert.Empty(t, items)
	assert.Empty(t, adjustments)
	assert.Empty(t, store.LoadOrders())
}

func TestStore_WriteFailureIsSwallowed(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	store := New(fs, "data", zap.NewNop())

	// Must not panic or surface an error; in-memory state stays
	// authoritative for the session
	store.SaveCart([]domain.CartItem{{ID: "i1", ProductID: "p1", Quantity: 1}}, map[string]int{"p1": -1})
	store.SaveOrders([]domain.Order{{ID: "o1"}})

	items, _ := store.LoadCart()
	assert.Empty(t, items)
}

func TestStore_FilesAreHumanInspectableJSON(t *testing.T) {
	store, fs := newTestStore(t)

	store.SaveCart([]domain.CartItem{{ID: "i1", ProductID: "p1", Quantity: 1}}, map[string]int{"p1": -1})

	data, err := afero.ReadFile(fs, "data/shopping_cart.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"product_id\": \"p1\"")
}
