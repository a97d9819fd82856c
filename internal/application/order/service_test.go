package order

import (
	"context"
	"errors"
	"testing"

	"github.com/car-parts-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockOrderStore struct{ mock.Mock }

func (m *mockOrderStore) Put(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *mockOrderStore) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if o, _ := args.Get(0).(*domain.Order); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOrderStore) Scan(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *mockOrderStore) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *mockOrderStore) ConfirmPayment(ctx context.Context, orderID string, p *domain.Payment) error {
	return m.Called(ctx, orderID, p).Error(0)
}
func (m *mockOrderStore) MarkShipped(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}
func (m *mockOrderStore) Delete(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// --- Create ---

func TestCreate_StartsPlacedAndUnpaid(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Put", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.OrderPlaced && !o.Paid && o.TransactionID == "" && o.OrderID != ""
	})).Return(nil)

	svc := NewService(repo, nil, nil)
	o, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		Email: "alice@example.com",
		Price: 25.00,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderPlaced, o.Status)
	assert.False(t, o.Paid)
	assert.Empty(t, o.TransactionID)
	repo.AssertExpectations(t)
}

// --- ConfirmPayment ---

func TestConfirmPayment_SetsPaidAndLedger(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "o1").Return(&domain.Order{
		OrderID: "o1", Email: "alice@example.com", Price: 25.00, Status: domain.OrderPlaced,
	}, nil)
	repo.On("ConfirmPayment", mock.Anything, "o1", mock.MatchedBy(func(p *domain.Payment) bool {
		return p.OrderID == "o1" && p.Amount == 2500 && p.Currency == "usd" && p.TransactionID == "txn_123"
	})).Return(nil)

	svc := NewService(repo, nil, nil)
	o, err := svc.ConfirmPayment(context.Background(), "o1", "txn_123")

	require.NoError(t, err)
	assert.True(t, o.Paid)
	assert.Equal(t, "txn_123", o.TransactionID)
	assert.Equal(t, domain.OrderPending, o.Status)
	repo.AssertExpectations(t)
}

func TestConfirmPayment_SendsReceiptEmail(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "o1").Return(&domain.Order{
		OrderID: "o1", Email: "alice@example.com", Price: 10, Status: domain.OrderPlaced,
	}, nil)
	repo.On("ConfirmPayment", mock.Anything, "o1", mock.Anything).Return(nil)

	m := &mockMailer{}
	m.On("SendEmail", "alice@example.com", "Payment received", mock.Anything).Return(nil)

	svc := NewService(repo, nil, m)
	_, err := svc.ConfirmPayment(context.Background(), "o1", "txn_9")

	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestConfirmPayment_ReceiptEmailFailureIsNotFatal(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "o1").Return(&domain.Order{
		OrderID: "o1", Email: "alice@example.com", Price: 10, Status: domain.OrderPlaced,
	}, nil)
	repo.On("ConfirmPayment", mock.Anything, "o1", mock.Anything).Return(nil)

	m := &mockMailer{}
	m.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := NewService(repo, nil, m)
	o, err := svc.ConfirmPayment(context.Background(), "o1", "txn_9")

	require.NoError(t, err)
	assert.True(t, o.Paid)
}

func TestConfirmPayment_MissingOrder(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(repo, nil, nil)
	_, err := svc.ConfirmPayment(context.Background(), "missing", "txn_1")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConfirmPayment_ConflictFromStore(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "o1").Return(&domain.Order{
		OrderID: "o1", Price: 10, Status: domain.OrderShipped, Paid: true,
	}, nil)
	repo.On("ConfirmPayment", mock.Anything, "o1", mock.Anything).Return(domain.ErrConflict)

	svc := NewService(repo, nil, nil)
	_, err := svc.ConfirmPayment(context.Background(), "o1", "txn_1")

	assert.True(t, errors.Is(err, domain.ErrConflict))
}

// --- MarkShipped ---

func TestMarkShipped_UnpaidRejected(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "o1").Return(&domain.Order{
		OrderID: "o1", Status: domain.OrderPlaced, Paid: false,
	}, nil)

	svc := NewService(repo, nil, nil)
	_, err := svc.MarkShipped(context.Background(), "o1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	repo.AssertNotCalled(t, "MarkShipped", mock.Anything, mock.Anything)
}

func TestMarkShipped_PaidOrderShips(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "o1").Return(&domain.Order{
		OrderID: "o1", Status: domain.OrderPending, Paid: true, Phone: "555-0100",
	}, nil)
	repo.On("MarkShipped", mock.Anything, "o1").Return(nil)

	sms := &mockSMS{}
	sms.On("SendSMS", mock.Anything, "555-0100", mock.Anything).Return(nil)

	svc := NewService(repo, sms, nil)
	o, err := svc.MarkShipped(context.Background(), "o1")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, o.Status)
	assert.True(t, o.Paid)
	sms.AssertExpectations(t)
}

func TestMarkShipped_NoPhoneSkipsSMS(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Get", mock.Anything, "o1").Return(&domain.Order{
		OrderID: "o1", Status: domain.OrderPending, Paid: true,
	}, nil)
	repo.On("MarkShipped", mock.Anything, "o1").Return(nil)

	sms := &mockSMS{}

	svc := NewService(repo, sms, nil)
	_, err := svc.MarkShipped(context.Background(), "o1")

	require.NoError(t, err)
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

// --- Listing ---

func TestListAll_NewestFirst(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Scan", mock.Anything).Return([]domain.Order{
		{OrderID: "01AAAAAAAAAAAAAAAAAAAAAAAA"},
		{OrderID: "01CCCCCCCCCCCCCCCCCCCCCCCC"},
		{OrderID: "01BBBBBBBBBBBBBBBBBBBBBBBB"},
	}, nil)

	svc := NewService(repo, nil, nil)
	orders, err := svc.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "01CCCCCCCCCCCCCCCCCCCCCCCC", orders[0].OrderID)
	assert.Equal(t, "01AAAAAAAAAAAAAAAAAAAAAAAA", orders[2].OrderID)
}

func TestListByOwner_DelegatesToIndex(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("ListByEmail", mock.Anything, "alice@example.com").Return([]domain.Order{
		{OrderID: "o2"}, {OrderID: "o1"},
	}, nil)

	svc := NewService(repo, nil, nil)
	orders, err := svc.ListByOwner(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Len(t, orders, 2)
	repo.AssertExpectations(t)
}
