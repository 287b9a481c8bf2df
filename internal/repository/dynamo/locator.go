package dynamo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"tally/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// EnvironmentSandbox is the environment marker for per-developer sandbox
// deployments; anything else names a deployment branch.
const EnvironmentSandbox = "sandbox"

// Deployment metadata tag keys on the physical tables.
const (
	tagDeploymentType = "deployment-type"
	tagBranchName     = "branch-name"
)

// tableFamilies are the logical entity families the authorizer needs, in a
// fixed order so error messages stay deterministic.
var tableFamilies = []string{"Checklist", "Share", "Section", "Item"}

// TableSet holds the resolved physical table names for one deployment.
type TableSet struct {
	Checklists string
	Shares     string
	Sections   string
	Items      string
}

// TableLocator resolves logical entity families to the physical tables of the
// current deployment. Multiple deployments of the same schema coexist in one
// account, distinguished by deployment-type and branch-name tags; the locator
// picks the candidate matching its configured environment.
//
// The result is cached for the life of the process (deployment topology does
// not change within it). The cache is an atomic pointer populated by
// idempotent recomputation: a race that discovers the same tables twice is
// harmless and cheaper than a lock.
type TableLocator struct {
	client      DynamoAPI
	environment string
	logger      *slog.Logger
	cached      atomic.Pointer[TableSet]
}

// NewTableLocator creates a locator for the given environment, which is
// either EnvironmentSandbox or a deployment branch name.
func NewTableLocator(client DynamoAPI, environment string, logger *slog.Logger) *TableLocator {
	return &TableLocator{
		client:      client,
		environment: environment,
		logger:      logger,
	}
}

// Resolve returns the physical table names for the four entity families.
// Returns domain.ResourceResolutionError when any family cannot be matched
// after enumerating all candidates; that is fatal and signals a deployment
// misconfiguration, so callers must not retry.
func (l *TableLocator) Resolve(ctx context.Context) (*TableSet, error) {
	if cached := l.cached.Load(); cached != nil {
		return cached, nil
	}

	set, err := l.discover(ctx)
	if err != nil {
		return nil, err
	}

	l.cached.Store(set)
	return set, nil
}

func (l *TableLocator) discover(ctx context.Context) (*TableSet, error) {
	names, err := l.listTableNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate tables: %w", err)
	}

	set := &TableSet{}
	var missing []string
	for _, family := range tableFamilies {
		physical := l.matchFamily(ctx, family, names)
		if physical == "" {
			missing = append(missing, family)
			continue
		}
		switch family {
		case "Checklist":
			set.Checklists = physical
		case "Share":
			set.Shares = physical
		case "Section":
			set.Sections = physical
		case "Item":
			set.Items = physical
		}
	}

	if len(missing) > 0 {
		return nil, &domain.ResourceResolutionError{
			Missing:     missing,
			Environment: l.environment,
		}
	}

	l.logger.Info("resolved entity tables",
		"environment", l.environment,
		"checklists", set.Checklists,
		"shares", set.Shares,
		"sections", set.Sections,
		"items", set.Items,
	)
	return set, nil
}

func (l *TableLocator) listTableNames(ctx context.Context) ([]string, error) {
	var names []string
	var startName *string
	for {
		out, err := l.client.ListTables(ctx, &dynamodb.ListTablesInput{
			ExclusiveStartTableName: startName,
		})
		if err != nil {
			return nil, err
		}
		names = append(names, out.TableNames...)
		if out.LastEvaluatedTableName == nil {
			break
		}
		startName = out.LastEvaluatedTableName
	}
	return names, nil
}

func (l *TableLocator) matchFamily(ctx context.Context, family string, names []string) string {
	prefix := family + "-"
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if l.matchesEnvironment(l.tableTags(ctx, name)) {
			return name
		}
	}
	return ""
}

func (l *TableLocator) matchesEnvironment(tags map[string]string) bool {
	if l.environment == EnvironmentSandbox {
		return tags[tagDeploymentType] == EnvironmentSandbox
	}
	return tags[tagDeploymentType] == "branch" && tags[tagBranchName] == l.environment
}

// tableTags fetches the resource tags for a candidate table. Failures degrade
// to an empty tag set: tags are best-effort metadata, and a candidate without
// readable tags simply never matches.
func (l *TableLocator) tableTags(ctx context.Context, name string) map[string]string {
	desc, err := l.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(name),
	})
	if err != nil || desc.Table == nil || desc.Table.TableArn == nil {
		l.logger.Debug("skipping candidate without describable ARN", "table", name, "error", err)
		return map[string]string{}
	}

	tags := map[string]string{}
	var nextToken *string
	for {
		out, err := l.client.ListTagsOfResource(ctx, &dynamodb.ListTagsOfResourceInput{
			ResourceArn: desc.Table.TableArn,
			NextToken:   nextToken,
		})
		if err != nil {
			l.logger.Debug("tag fetch failed for candidate", "table", name, "error", err)
			return map[string]string{}
		}
		for _, tag := range out.Tags {
			if tag.Key != nil && tag.Value != nil {
				tags[*tag.Key] = *tag.Value
			}
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return tags
}
