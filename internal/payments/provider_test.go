package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCreateIntent_RejectsNonPositiveAmounts(t *testing.T) {
	// Amount validation happens before any network call
	provider := NewStripeProvider("sk_test_unused", zap.NewNop())

	_, err := provider.CreateIntent(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = provider.CreateIntent(-12.50)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
