package payments

import (
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"go.uber.org/zap"
)

var ErrInvalidAmount = errors.New("amount must be greater than zero")

// Intent is the authorized payment handle returned by the processor.
// Downstream code treats ID as an opaque payment reference.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// Provider authorizes a payment for an order total
type Provider interface {
	CreateIntent(amount float64) (Intent, error)
}

type stripeProvider struct {
	logger *zap.Logger
}

// NewStripeProvider configures the Stripe SDK with the account secret key
// and returns a Provider backed by it
func NewStripeProvider(secretKey string, logger *zap.Logger) Provider {
	stripe.Key = secretKey
	return &stripeProvider{logger: logger}
}

// CreateIntent creates a USD payment intent for the given amount.
// Stripe works in cents.
func (p *stripeProvider) CreateIntent(amount float64) (Intent, error) {
	if amount <= 0 {
		return Intent{}, ErrInvalidAmount
	}

	amountInCents := int64(math.Round(amount * 100))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		p.logger.Error("Failed to create payment intent",
			zap.Int64("amount_cents", amountInCents),
			zap.Error(err),
		)
		return Intent{}, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
