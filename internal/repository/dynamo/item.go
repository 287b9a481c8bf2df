package dynamo

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/domain"
	"tally/internal/domain/models"
	"tally/internal/domain/repositories"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoItemRepository implements ItemRepository over the
// environment-resolved item table.
type DynamoItemRepository struct {
	client  DynamoAPI
	locator *TableLocator
	logger  *slog.Logger
}

// NewItemRepository creates a DynamoDB-backed item repository.
func NewItemRepository(config *RepositoryConfig) repositories.ItemRepository {
	return &DynamoItemRepository{
		client:  config.Client,
		locator: config.Locator,
		logger:  config.Logger,
	}
}

// Create persists a new item.
func (r *DynamoItemRepository) Create(ctx context.Context, item *models.Item) error {
	tables, err := r.locator.Resolve(ctx)
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tables.Items),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// GetByID retrieves an item by ID.
func (r *DynamoItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	tables, err := r.locator.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tables.Items),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		if isResourceNotFoundException(err) {
			return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	var item models.Item
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return &item, nil
}
