package stripeinfra

import (
	"context"
	"fmt"

	"github.com/car-parts-api/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Gateway creates card payment intents against the Stripe API.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

type gateway struct {
	api *client.API
}

func NewGateway(secretKey string) (Gateway, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is not set")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &gateway{api: api}, nil
}

func (g *gateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %v: %w", err, domain.ErrPaymentGateway)
	}
	return pi.ClientSecret, nil
}
