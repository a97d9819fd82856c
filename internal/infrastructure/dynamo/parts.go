package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/car-parts-api/internal/domain"
)

// PartRepo provides typed DynamoDB operations for the parts table.
type PartRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPartRepo(client *dynamodb.Client, tableName string) *PartRepo {
	return &PartRepo{client: client, tableName: tableName}
}

func (r *PartRepo) Put(ctx context.Context, p *domain.Part) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal part: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PartRepo) Get(ctx context.Context, partID string) (*domain.Part, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("part_id", partID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("part %s: %w", partID, domain.ErrNotFound)
	}
	var p domain.Part
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PartRepo) Scan(ctx context.Context) ([]domain.Part, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var parts []domain.Part
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *PartRepo) SetImageURL(ctx context.Context, partID, url string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{fieldImageURL: url})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("part_id", partID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(part_id)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("part %s: %w", partID, domain.ErrNotFound)
	}
	return err
}

// HardDelete removes a part permanently.
func (r *PartRepo) HardDelete(ctx context.Context, partID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("part_id", partID),
		ConditionExpression: aws.String("attribute_exists(part_id)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("part %s: %w", partID, domain.ErrNotFound)
	}
	return err
}
