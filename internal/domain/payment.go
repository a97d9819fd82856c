package domain

import "time"

// Payment is the durable ledger entry written when an order's payment is
// confirmed. Amount is in minor currency units (cents).
type Payment struct {
	PaymentID     string    `json:"id" dynamodbav:"payment_id"`
	OrderID       string    `json:"orderId" dynamodbav:"order_id"`
	Amount        int64     `json:"amount" dynamodbav:"amount"`
	Currency      string    `json:"currency" dynamodbav:"currency"`
	TransactionID string    `json:"transactionId" dynamodbav:"transaction_id"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateIntentRequest struct {
	Price float64 `json:"price" validate:"required"`
}
