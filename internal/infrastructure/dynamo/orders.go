package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/car-parts-api/internal/domain"
)

// OrderRepo provides typed DynamoDB operations for the orders table. It also
// knows the payments table name because payment confirmation writes the order
// mutation and the payment ledger entry in one transaction.
type OrderRepo struct {
	client        *dynamodb.Client
	tableName     string
	paymentsTable string
}

func NewOrderRepo(client *dynamodb.Client, tableName, paymentsTable string) *OrderRepo {
	return &OrderRepo{client: client, tableName: tableName, paymentsTable: paymentsTable}
}

func (r *OrderRepo) Put(ctx context.Context, o *domain.Order) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *OrderRepo) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("order_id", orderID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	var o domain.Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Scan returns every order. Ordering is applied by the caller.
func (r *OrderRepo) Scan(ctx context.Context) ([]domain.Order, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var orders []domain.Order
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByEmail returns an owner's orders newest first. The email GSI uses
// order_id (a ULID) as its range key, so a descending query is already in
// reverse creation order.
func (r *OrderRepo) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("email-index"),
		KeyConditionExpression:    aws.String("#e = :v"),
		ExpressionAttributeNames:  map[string]string{"#e": "email"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: email}},
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var orders []domain.Order
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ConfirmPayment marks the order paid and writes the payment ledger entry in
// a single TransactWriteItems call, so a crash can never leave a ledger entry
// without the matching order mutation. The condition expression rejects
// orders that are missing, already paid, or already shipped — a concurrent
// shipment cannot interleave with this transition.
func (r *OrderRepo) ConfirmPayment(ctx context.Context, orderID string, p *domain.Payment) error {
	paymentItem, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal payment: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(r.tableName),
					Key:       strKey("order_id", orderID),
					UpdateExpression: aws.String(
						"SET #paid = :t, #txn = :txn, #status = :pending, #updated = :now"),
					ConditionExpression: aws.String(
						"attribute_exists(order_id) AND #paid = :f AND #status = :placed"),
					ExpressionAttributeNames: map[string]string{
						"#paid":    fieldPaid,
						"#txn":     fieldTransactionID,
						"#status":  fieldStatus,
						"#updated": fieldUpdatedAt,
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":t":       &types.AttributeValueMemberBOOL{Value: true},
						":f":       &types.AttributeValueMemberBOOL{Value: false},
						":txn":     &types.AttributeValueMemberS{Value: p.TransactionID},
						":pending": &types.AttributeValueMemberS{Value: domain.OrderPending},
						":placed":  &types.AttributeValueMemberS{Value: domain.OrderPlaced},
						":now":     &types.AttributeValueMemberS{Value: now},
					},
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.paymentsTable),
					Item:      paymentItem,
				},
			},
		},
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("order %s is not awaiting payment: %w", orderID, domain.ErrConflict)
	}
	return err
}

// MarkShipped advances a paid, pending order to shipped. The condition
// expression enforces the transition at the store level so a stale read
// cannot ship an unpaid order.
func (r *OrderRepo) MarkShipped(ctx context.Context, orderID string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("order_id", orderID),
		UpdateExpression: aws.String("SET #status = :shipped, #updated = :now"),
		ConditionExpression: aws.String(
			"attribute_exists(order_id) AND #paid = :t AND #status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#paid":    fieldPaid,
			"#status":  fieldStatus,
			"#updated": fieldUpdatedAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":       &types.AttributeValueMemberBOOL{Value: true},
			":shipped": &types.AttributeValueMemberS{Value: domain.OrderShipped},
			":pending": &types.AttributeValueMemberS{Value: domain.OrderPending},
			":now":     &types.AttributeValueMemberS{Value: now},
		},
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("order %s is not ready to ship: %w", orderID, domain.ErrConflict)
	}
	return err
}

// Delete removes the order permanently. Irreversible.
func (r *OrderRepo) Delete(ctx context.Context, orderID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("order_id", orderID),
		ConditionExpression: aws.String("attribute_exists(order_id)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	return err
}
