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
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoShareRepository implements ShareRepository over the
// environment-resolved share table. The table is keyed by the composite
// (checklistId, userId) pair, which enforces the one-row-per-pair invariant.
type DynamoShareRepository struct {
	client  DynamoAPI
	locator *TableLocator
	logger  *slog.Logger
}

// NewShareRepository creates a DynamoDB-backed share repository.
func NewShareRepository(config *RepositoryConfig) repositories.ShareRepository {
	return &DynamoShareRepository{
		client:  config.Client,
		locator: config.Locator,
		logger:  config.Logger,
	}
}

// Put upserts a share row.
func (r *DynamoShareRepository) Put(ctx context.Context, share *models.Share) error {
	if err := share.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tables, err := r.locator.Resolve(ctx)
	if err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(share)
	if err != nil {
		return fmt.Errorf("marshal share: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tables.Shares),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put share: %w", err)
	}
	return nil
}

// Get retrieves the share for the (checklistId, userId) pair.
func (r *DynamoShareRepository) Get(ctx context.Context, checklistID, userID string) (*models.Share, error) {
	tables, err := r.locator.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tables.Shares),
		Key: map[string]types.AttributeValue{
			"checklistId": &types.AttributeValueMemberS{Value: checklistID},
			"userId":      &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		if isResourceNotFoundException(err) {
			return nil, fmt.Errorf("share %s/%s: %w", checklistID, userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get share: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("share %s/%s: %w", checklistID, userID, domain.ErrNotFound)
	}

	var share models.Share
	if err := attributevalue.UnmarshalMap(out.Item, &share); err != nil {
		return nil, fmt.Errorf("unmarshal share: %w", err)
	}
	return &share, nil
}

// ListByChecklist returns the claimed shares on a checklist, excluding
// pending link invites.
func (r *DynamoShareRepository) ListByChecklist(ctx context.Context, checklistID string) ([]models.Share, error) {
	tables, err := r.locator.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	keyCond := expression.Key("checklistId").Equal(expression.Value(checklistID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build share query: %w", err)
	}

	shares := []models.Share{}
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(tables.Shares),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query shares: %w", err)
		}

		var page []models.Share
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal shares: %w", err)
		}
		for _, share := range page {
			if share.IsPending() {
				continue
			}
			shares = append(shares, share)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return shares, nil
}
