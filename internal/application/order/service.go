package order

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/car-parts-api/internal/domain"
	"github.com/car-parts-api/internal/pkg/id"
)

// Service drives the order state machine:
// placed -> pending (payment confirmed) -> shipped.
type Service interface {
	Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByOwner(ctx context.Context, email string) ([]domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ConfirmPayment(ctx context.Context, orderID, transactionID string) (*domain.Order, error)
	MarkShipped(ctx context.Context, orderID string) (*domain.Order, error)
	Delete(ctx context.Context, orderID string) error
}

type orderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	Scan(ctx context.Context) ([]domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	ConfirmPayment(ctx context.Context, orderID string, p *domain.Payment) error
	MarkShipped(ctx context.Context, orderID string) error
	Delete(ctx context.Context, orderID string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	repo   orderStore
	sms    smsSender // nil when SNS is unavailable
	mailer mailer    // nil when SMTP is unconfigured
}

func NewService(repo orderStore, sms smsSender, m mailer) Service {
	return &service{repo: repo, sms: sms, mailer: m}
}

func (s *service) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	now := time.Now().UTC()
	o := &domain.Order{
		OrderID:   id.New(),
		Email:     req.Email,
		PartID:    req.PartID,
		PartName:  req.PartName,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Address:   req.Address,
		Phone:     req.Phone,
		Paid:      false,
		Status:    domain.OrderPlaced,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderID > orders[j].OrderID // ULIDs: newest first
	})
	return orders, nil
}

func (s *service) ListByOwner(ctx context.Context, email string) ([]domain.Order, error) {
	return s.repo.ListByEmail(ctx, email)
}

func (s *service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.Get(ctx, orderID)
}

// ConfirmPayment records the client-reported gateway transaction: the order
// becomes paid/pending and a ledger entry with the charged amount is written
// in the same store transaction.
func (s *service) ConfirmPayment(ctx context.Context, orderID, transactionID string) (*domain.Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	p := &domain.Payment{
		PaymentID:     id.New(),
		OrderID:       o.OrderID,
		Amount:        int64(math.Round(o.Price * 100)),
		Currency:      "usd",
		TransactionID: transactionID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.ConfirmPayment(ctx, orderID, p); err != nil {
		return nil, err
	}
	o.Paid = true
	o.TransactionID = transactionID
	o.Status = domain.OrderPending

	if s.mailer != nil {
		body := fmt.Sprintf("We received your payment of $%.2f for order %s (transaction %s).",
			o.Price, o.OrderID, transactionID)
		if err := s.mailer.SendEmail(o.Email, "Payment received", body); err != nil {
			log.Printf("WARN: payment receipt email for order %s: %v", o.OrderID, err)
		}
	}
	return o, nil
}

// MarkShipped advances a paid order to shipped. Shipping an unpaid order is
// rejected with a conflict; the store-level condition enforces the same rule
// against concurrent writers.
func (s *service) MarkShipped(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Paid {
		return nil, fmt.Errorf("order %s has not been paid: %w", orderID, domain.ErrConflict)
	}
	if err := s.repo.MarkShipped(ctx, orderID); err != nil {
		return nil, err
	}
	o.Status = domain.OrderShipped

	if s.sms != nil && o.Phone != "" {
		msg := fmt.Sprintf("Your order %s has shipped.", o.OrderID)
		if err := s.sms.SendSMS(ctx, o.Phone, msg); err != nil {
			log.Printf("WARN: shipment SMS for order %s: %v", o.OrderID, err)
		}
	}
	return o, nil
}

func (s *service) Delete(ctx context.Context, orderID string) error {
	return s.repo.Delete(ctx, orderID)
}
