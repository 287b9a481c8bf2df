package dynamo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const fakeArnPrefix = "arn:aws:dynamodb:us-east-1:000000000000:table/"

// fakeTable is one table in the fake account: its resource tags plus stored
// items.
type fakeTable struct {
	tags   map[string]string
	tagErr error
	items  []map[string]types.AttributeValue
}

// fakeDynamo implements DynamoAPI in memory. ListTables returns names in
// sorted order, paginated when pageSize is set, so discovery is
// deterministic.
type fakeDynamo struct {
	tables    map[string]*fakeTable
	pageSize  int
	listCalls int
}

func (f *fakeDynamo) tableNames() []string {
	names := make([]string, 0, len(f.tables))
	for name := range f.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *fakeDynamo) ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	f.listCalls++
	names := f.tableNames()

	start := 0
	if params.ExclusiveStartTableName != nil {
		for i, name := range names {
			if name == *params.ExclusiveStartTableName {
				start = i + 1
				break
			}
		}
	}

	end := len(names)
	if f.pageSize > 0 && start+f.pageSize < end {
		end = start + f.pageSize
	}

	out := &dynamodb.ListTablesOutput{TableNames: names[start:end]}
	if end < len(names) {
		out.LastEvaluatedTableName = aws.String(names[end-1])
	}
	return out, nil
}

func (f *fakeDynamo) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	name := aws.ToString(params.TableName)
	if _, ok := f.tables[name]; !ok {
		return nil, &types.ResourceNotFoundException{}
	}
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{TableArn: aws.String(fakeArnPrefix + name)},
	}, nil
}

func (f *fakeDynamo) ListTagsOfResource(ctx context.Context, params *dynamodb.ListTagsOfResourceInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTagsOfResourceOutput, error) {
	name := strings.TrimPrefix(aws.ToString(params.ResourceArn), fakeArnPrefix)
	table, ok := f.tables[name]
	if !ok {
		return nil, &types.ResourceNotFoundException{}
	}
	if table.tagErr != nil {
		return nil, table.tagErr
	}

	out := &dynamodb.ListTagsOfResourceOutput{}
	for key, value := range table.tags {
		out.Tags = append(out.Tags, types.Tag{Key: aws.String(key), Value: aws.String(value)})
	}
	return out, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	table, ok := f.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, &types.ResourceNotFoundException{}
	}
	for _, item := range table.items {
		if matchesKey(item, params.Key) {
			return &dynamodb.GetItemOutput{Item: item}, nil
		}
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	table, ok := f.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, &types.ResourceNotFoundException{}
	}
	table.items = append(table.items, params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// Query supports the one query shape the store issues: an equality key
// condition on checklistId.
func (f *fakeDynamo) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	table, ok := f.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, &types.ResourceNotFoundException{}
	}

	var want string
	for _, value := range params.ExpressionAttributeValues {
		if s, ok := value.(*types.AttributeValueMemberS); ok {
			want = s.Value
		}
	}
	if want == "" {
		return nil, errors.New("fake query: no key value supplied")
	}

	out := &dynamodb.QueryOutput{}
	for _, item := range table.items {
		if s, ok := item["checklistId"].(*types.AttributeValueMemberS); ok && s.Value == want {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func matchesKey(item, key map[string]types.AttributeValue) bool {
	for name, want := range key {
		wantS, ok := want.(*types.AttributeValueMemberS)
		if !ok {
			return false
		}
		haveS, ok := item[name].(*types.AttributeValueMemberS)
		if !ok || haveS.Value != wantS.Value {
			return false
		}
	}
	return true
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
