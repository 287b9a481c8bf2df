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

// DynamoChecklistRepository implements ChecklistRepository over the
// environment-resolved checklist table.
type DynamoChecklistRepository struct {
	client  DynamoAPI
	locator *TableLocator
	logger  *slog.Logger
}

// NewChecklistRepository creates a DynamoDB-backed checklist repository.
func NewChecklistRepository(config *RepositoryConfig) repositories.ChecklistRepository {
	return &DynamoChecklistRepository{
		client:  config.Client,
		locator: config.Locator,
		logger:  config.Logger,
	}
}

// Create persists a new checklist.
func (r *DynamoChecklistRepository) Create(ctx context.Context, checklist *models.Checklist) error {
	tables, err := r.locator.Resolve(ctx)
	if err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(checklist)
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tables.Checklists),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put checklist: %w", err)
	}
	return nil
}

// GetByID retrieves a checklist by ID.
func (r *DynamoChecklistRepository) GetByID(ctx context.Context, id string) (*models.Checklist, error) {
	tables, err := r.locator.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tables.Checklists),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		if isResourceNotFoundException(err) {
			return nil, fmt.Errorf("checklist %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get checklist: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("checklist %s: %w", id, domain.ErrNotFound)
	}

	var checklist models.Checklist
	if err := attributevalue.UnmarshalMap(out.Item, &checklist); err != nil {
		return nil, fmt.Errorf("unmarshal checklist: %w", err)
	}
	return &checklist, nil
}
