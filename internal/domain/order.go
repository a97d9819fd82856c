package domain

import "time"

// Order statuses. An order only ever moves forward:
// placed -> pending (payment confirmed) -> shipped.
const (
	OrderPlaced  = "placed"
	OrderPending = "pending"
	OrderShipped = "shipped"
)

type Order struct {
	OrderID       string    `json:"id" dynamodbav:"order_id"`
	Email         string    `json:"email" dynamodbav:"email"`
	PartID        string    `json:"partId,omitempty" dynamodbav:"part_id"`
	PartName      string    `json:"partName,omitempty" dynamodbav:"part_name"`
	Quantity      int       `json:"quantity,omitempty" dynamodbav:"quantity"`
	Price         float64   `json:"price" dynamodbav:"price"`
	Address       string    `json:"address,omitempty" dynamodbav:"address"`
	Phone         string    `json:"phone,omitempty" dynamodbav:"phone"`
	Paid          bool      `json:"paid" dynamodbav:"paid"`
	TransactionID string    `json:"transactionId,omitempty" dynamodbav:"transaction_id"`
	Status        string    `json:"status" dynamodbav:"status"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateOrderRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	PartID   string  `json:"partId"`
	PartName string  `json:"partName"`
	Quantity int     `json:"quantity" validate:"omitempty,min=1"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
}

// ConfirmPaymentRequest is the body of PATCH /order/{id}: the client reports
// the gateway transaction id after completing the card flow.
type ConfirmPaymentRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
}
