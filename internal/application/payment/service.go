package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/car-parts-api/internal/domain"
)

// Currency for every payment intent. The storefront only charges in USD.
const Currency = "usd"

// Service converts an order price into a card payment intent and relays the
// gateway's client secret to the caller.
type Service interface {
	CreateIntent(ctx context.Context, price float64) (clientSecret string, err error)
}

type gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type service struct {
	gateway gateway
}

func NewService(g gateway) Service {
	return &service{gateway: g}
}

func (s *service) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return "", fmt.Errorf("price must be a positive number: %w", domain.ErrBadRequest)
	}
	if s.gateway == nil {
		return "", fmt.Errorf("gateway is not configured: %w", domain.ErrPaymentGateway)
	}
	amount := int64(math.Round(price * 100))
	return s.gateway.CreateIntent(ctx, amount, Currency)
}
