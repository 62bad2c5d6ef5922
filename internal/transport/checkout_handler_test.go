package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/cart"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/catalog"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/orders"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/payments"
	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeProvider records the authorized amount or fails on demand
type fakeProvider struct {
	amount float64
	err    error
}

func (f *fakeProvider) CreateIntent(amount float64) (payments.Intent, error) {
	if f.err != nil {
		return payments.Intent{}, f.err
	}
	f.amount = amount
	return payments.Intent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

// passthrough stands in for the session middleware
func passthrough(next http.Handler) http.Handler { return next }

func newCheckoutRouter(t *testing.T, provider payments.Provider) (*chi.Mux, *cart.Store, *orders.Recorder) {
	t.Helper()

	cat := catalog.New(handlerTestProducts)
	store := storage.New(afero.NewMemMapFs(), "data", zap.NewNop())
	cartStore := cart.NewStore(cat, store, zap.NewNop())
	recorder := orders.NewRecorder(cat, store)

	router := chi.NewRouter()
	NewCheckoutHandler(cartStore, recorder, provider, zap.NewNop()).RegisterRoutes(router, passthrough)
	return router, cartStore, recorder
}

const validCheckoutBody = `{
	"shipping_address": {
		"name": "Usuario Demo",
		"address": "Calle Falsa 123",
		"city": "Bogotá",
		"postal_code": "110111",
		"country": "Colombia"
	}
}`

func TestCheckout_RecordsOrderAndClearsCart(t *testing.T) {
	provider := &fakeProvider{}
	router, cartStore, recorder := newCheckoutRouter(t, provider)

	require.NoError(t, cartStore.AddItem("vela-1", 2))
	require.NoError(t, cartStore.AddItem("difusor-1", 1))
	expectedTotal := 2*24.99 + 34

	w := doJSON(t, router, "POST", "/api/checkout", validCheckoutBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pi_test_secret", resp.ClientSecret)
	assert.Equal(t, "pi_test", resp.Order.PaymentRef)
	assert.InDelta(t, expectedTotal, resp.Order.Total, 1e-9)
	assert.InDelta(t, expectedTotal, provider.amount, 1e-9)
	require.Len(t, resp.Order.Items, 2)
	assert.Equal(t, "Vela Lavanda", resp.Order.Items[0].ProductName)

	// The cart is cleared and the reservations restored
	assert.Equal(t, 0, cartStore.ItemCount())
	assert.Equal(t, 5, cartStore.AvailableStock("vela-1"))

	// The order is findable afterwards
	stored, err := recorder.FindByID(resp.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Order.Items, stored.Items)
}

func TestCheckout_RejectsEmptyCart(t *testing.T) {
	router, _, recorder := newCheckoutRouter(t, &fakeProvider{})

	w := doJSON(t, router, "POST", "/api/checkout", validCheckoutBody)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, recorder.ListAll())
}

func TestCheckout_RejectsIncompleteAddress(t *testing.T) {
	router, cartStore, recorder := newCheckoutRouter(t, &fakeProvider{})
	require.NoError(t, cartStore.AddItem("vela-1", 1))

	w := doJSON(t, router, "POST", "/api/checkout", `{"shipping_address":{"name":"Demo"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, recorder.ListAll())
	assert.Equal(t, 1, cartStore.ItemCount())
}

func TestCheckout_ProcessorFailureLeavesCartIntact(t *testing.T) {
	provider := &fakeProvider{err: errors.New("stripe unavailable")}
	router, cartStore, recorder := newCheckoutRouter(t, provider)
	require.NoError(t, cartStore.AddItem("vela-1", 1))

	w := doJSON(t, router, "POST", "/api/checkout", validCheckoutBody)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, recorder.ListAll())
	assert.Equal(t, 1, cartStore.ItemCount())
}
