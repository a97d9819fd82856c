package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/car-parts-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	args := m.Called(ctx, amount, currency)
	return args.String(0), args.Error(1)
}

func TestCreateIntent_ConvertsToMinorUnits(t *testing.T) {
	g := &mockGateway{}
	g.On("CreateIntent", mock.Anything, int64(2500), "usd").Return("pi_secret_abc", nil)

	svc := NewService(g)
	secret, err := svc.CreateIntent(context.Background(), 25.00)

	require.NoError(t, err)
	assert.Equal(t, "pi_secret_abc", secret)
	g.AssertExpectations(t)
}

func TestCreateIntent_RoundsFractionalCents(t *testing.T) {
	g := &mockGateway{}
	g.On("CreateIntent", mock.Anything, int64(1999), "usd").Return("pi_secret_xyz", nil)

	svc := NewService(g)
	_, err := svc.CreateIntent(context.Background(), 19.985)

	require.NoError(t, err)
	g.AssertExpectations(t)
}

func TestCreateIntent_NegativePrice_NoGatewayCall(t *testing.T) {
	g := &mockGateway{}

	svc := NewService(g)
	_, err := svc.CreateIntent(context.Background(), -5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	g.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateIntent_ZeroPriceRejected(t *testing.T) {
	svc := NewService(&mockGateway{})
	_, err := svc.CreateIntent(context.Background(), 0)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreateIntent_GatewayErrorSurfaces(t *testing.T) {
	g := &mockGateway{}
	g.On("CreateIntent", mock.Anything, int64(1000), "usd").
		Return("", domain.ErrPaymentGateway)

	svc := NewService(g)
	_, err := svc.CreateIntent(context.Background(), 10)

	assert.True(t, errors.Is(err, domain.ErrPaymentGateway))
}

func TestCreateIntent_NilGateway(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.CreateIntent(context.Background(), 10)
	assert.True(t, errors.Is(err, domain.ErrPaymentGateway))
}
