package dynamodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/kishore-rajkumar/task-manager-api/internal/platform/logger"
	"github.com/kishore-rajkumar/task-manager-api/internal/store"
)

const storeComponent = "dynamodb_task_store"

const (
	// DefaultTable is the table name used when none is configured.
	DefaultTable = "Tasks"
	// DefaultStatusIndex is the name of the global secondary index on status.
	DefaultStatusIndex = "status-index"

	keyAttribute    = "id"
	statusAttribute = "status"
)

// item is the on-table layout of a task.
type item struct {
	ID          string `dynamodbav:"id"`
	Title       string `dynamodbav:"title,omitempty"`
	Description string `dynamodbav:"description,omitempty"`
	Status      string `dynamodbav:"status,omitempty"`
}

func toItem(r store.Record) item {
	return item(r)
}

func (i item) record() store.Record {
	return store.Record(i)
}

// TaskStore implements store.TaskStore on a DynamoDB table.
type TaskStore struct {
	client      dynamodbiface.DynamoDBAPI
	table       string
	statusIndex string
	logger      *slog.Logger
}

// Compile-time check to ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore using client. Empty names select
// DefaultTable and DefaultStatusIndex.
func NewTaskStore(client dynamodbiface.DynamoDBAPI, table, statusIndex string, log *slog.Logger) (*TaskStore, error) {
	if client == nil {
		return nil, fmt.Errorf("dynamodb client cannot be nil")
	}
	if table == "" {
		table = DefaultTable
	}
	if statusIndex == "" {
		statusIndex = DefaultStatusIndex
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskStore{
		client:      client,
		table:       table,
		statusIndex: statusIndex,
		logger: log.With(
			slog.String("component", storeComponent),
			slog.String("table", table),
		),
	}, nil
}

func (s *TaskStore) key(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		keyAttribute: {S: aws.String(id)},
	}
}

func (s *TaskStore) fail(ctx context.Context, op string, err error, attrs ...any) error {
	attrs = append(attrs,
		slog.String("operation", op),
		slog.String("aws_code", errorCode(err)),
		slog.String("error", err.Error()))
	logger.ForComponent(ctx, s.logger, storeComponent).Error("dynamodb request failed", attrs...)
	return MapError(op, err)
}

// Get implements store.TaskStore.
func (s *TaskStore) Get(ctx context.Context, id string) (*store.Record, error) {
	out, err := s.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(id),
	})
	if err != nil {
		return nil, s.fail(ctx, "get", err, slog.String("task_id", id))
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var it item
	if err := dynamodbattribute.UnmarshalMap(out.Item, &it); err != nil {
		return nil, store.NewStoreError(backendName, "get", "failed to decode item", err)
	}
	r := it.record()
	return &r, nil
}

// Put implements store.TaskStore.
func (s *TaskStore) Put(ctx context.Context, record store.Record) error {
	if record.ID == "" {
		return store.NewStoreError(backendName, "put", "record has no id", store.ErrInvalidRecord)
	}

	av, err := dynamodbattribute.MarshalMap(toItem(record))
	if err != nil {
		return store.NewStoreError(backendName, "put", "failed to encode item", err)
	}

	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return s.fail(ctx, "put", err, slog.String("task_id", record.ID))
	}
	return nil
}

// Delete implements store.TaskStore. DeleteItem on a missing key succeeds.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(id),
	})
	if err != nil {
		return s.fail(ctx, "delete", err, slog.String("task_id", id))
	}
	return nil
}

// Scan implements store.TaskStore.
//
// With a positive limit a single Scan request is issued with Limit set, so
// the limit bounds the items evaluated. Otherwise every page is read.
func (s *TaskStore) Scan(ctx context.Context, limit int) ([]store.Record, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(s.table)}

	if limit > 0 {
		input.Limit = aws.Int64(int64(limit))
		out, err := s.client.ScanWithContext(ctx, input)
		if err != nil {
			return nil, s.fail(ctx, "scan", err, slog.Int("limit", limit))
		}
		return decodeItems("scan", out.Items)
	}

	var items []map[string]*dynamodb.AttributeValue
	err := s.client.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		items = append(items, page.Items...)
		return true
	})
	if err != nil {
		return nil, s.fail(ctx, "scan", err)
	}
	return decodeItems("scan", items)
}

// QueryByStatus implements store.TaskStore using the status index.
func (s *TaskStore) QueryByStatus(ctx context.Context, status string) ([]store.Record, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(s.statusIndex),
		KeyConditionExpression: aws.String("#s = :s"),
		ExpressionAttributeNames: map[string]*string{
			"#s": aws.String(statusAttribute),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":s": {S: aws.String(status)},
		},
	}

	var items []map[string]*dynamodb.AttributeValue
	err := s.client.QueryPagesWithContext(ctx, input, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		items = append(items, page.Items...)
		return true
	})
	if err != nil {
		return nil, s.fail(ctx, "query", err, slog.String("index", s.statusIndex))
	}
	return decodeItems("query", items)
}

func decodeItems(op string, items []map[string]*dynamodb.AttributeValue) ([]store.Record, error) {
	var decoded []item
	if err := dynamodbattribute.UnmarshalListOfMaps(items, &decoded); err != nil {
		return nil, store.NewStoreError(backendName, op, "failed to decode items", err)
	}

	records := make([]store.Record, 0, len(decoded))
	for _, it := range decoded {
		records = append(records, it.record())
	}
	return records, nil
}

// EnsureTable creates the table with its status index using on-demand
// billing, then waits until it is active. An existing table is left as is.
func (s *TaskStore) EnsureTable(ctx context.Context) error {
	log := logger.ForComponent(ctx, s.logger, storeComponent)

	_, err := s.client.CreateTableWithContext(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(s.table),
		BillingMode: aws.String(dynamodb.BillingModePayPerRequest),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{AttributeName: aws.String(keyAttribute), AttributeType: aws.String(dynamodb.ScalarAttributeTypeS)},
			{AttributeName: aws.String(statusAttribute), AttributeType: aws.String(dynamodb.ScalarAttributeTypeS)},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{AttributeName: aws.String(keyAttribute), KeyType: aws.String(dynamodb.KeyTypeHash)},
		},
		GlobalSecondaryIndexes: []*dynamodb.GlobalSecondaryIndex{
			{
				IndexName: aws.String(s.statusIndex),
				KeySchema: []*dynamodb.KeySchemaElement{
					{AttributeName: aws.String(statusAttribute), KeyType: aws.String(dynamodb.KeyTypeHash)},
				},
				Projection: &dynamodb.Projection{ProjectionType: aws.String(dynamodb.ProjectionTypeAll)},
			},
		},
	})
	if err != nil {
		if errorCode(err) == dynamodb.ErrCodeResourceInUseException {
			log.Debug("task table already exists")
			return nil
		}
		return s.fail(ctx, "ensure_table", err)
	}

	log.Info("creating task table", slog.String("status_index", s.statusIndex))
	if err := s.client.WaitUntilTableExistsWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	}); err != nil {
		return s.fail(ctx, "ensure_table", err)
	}
	return nil
}
