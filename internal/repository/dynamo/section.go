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

// DynamoSectionRepository implements SectionRepository over the
// environment-resolved section table.
type DynamoSectionRepository struct {
	client  DynamoAPI
	locator *TableLocator
	logger  *slog.Logger
}

// NewSectionRepository creates a DynamoDB-backed section repository.
func NewSectionRepository(config *RepositoryConfig) repositories.SectionRepository {
	return &DynamoSectionRepository{
		client:  config.Client,
		locator: config.Locator,
		logger:  config.Logger,
	}
}

// Create persists a new section.
func (r *DynamoSectionRepository) Create(ctx context.Context, section *models.Section) error {
	tables, err := r.locator.Resolve(ctx)
	if err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(section)
	if err != nil {
		return fmt.Errorf("marshal section: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tables.Sections),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put section: %w", err)
	}
	return nil
}

// GetByID retrieves a section by ID.
func (r *DynamoSectionRepository) GetByID(ctx context.Context, id string) (*models.Section, error) {
	tables, err := r.locator.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tables.Sections),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		if isResourceNotFoundException(err) {
			return nil, fmt.Errorf("section %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get section: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("section %s: %w", id, domain.ErrNotFound)
	}

	var section models.Section
	if err := attributevalue.UnmarshalMap(out.Item, &section); err != nil {
		return nil, fmt.Errorf("unmarshal section: %w", err)
	}
	return &section, nil
}
