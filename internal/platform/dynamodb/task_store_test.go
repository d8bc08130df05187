package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishore-rajkumar/task-manager-api/internal/config"
	"github.com/kishore-rajkumar/task-manager-api/internal/store"
)

func newTestStore(t *testing.T) (*TaskStore, *fakeDynamoDB) {
	t.Helper()
	fake := newFakeDynamoDB()
	s, err := NewTaskStore(fake, "", "", nil)
	require.NoError(t, err)
	return s, fake
}

func seed(t *testing.T, s *TaskStore, records ...store.Record) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, s.Put(context.Background(), r))
	}
}

func ids(records []store.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestNewTaskStore(t *testing.T) {
	_, err := NewTaskStore(nil, "", "", nil)
	assert.Error(t, err)

	s, err := NewTaskStore(newFakeDynamoDB(), "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTable, s.table)
	assert.Equal(t, DefaultStatusIndex, s.statusIndex)

	s, err = NewTaskStore(newFakeDynamoDB(), "Other", "by-status", nil)
	require.NoError(t, err)
	assert.Equal(t, "Other", s.table)
	assert.Equal(t, "by-status", s.statusIndex)
}

func TestTaskStore_PutGetRoundTrip(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()

	rec := store.Record{ID: "1", Title: "A", Description: "d", Status: "PENDING"}
	require.NoError(t, s.Put(ctx, rec))

	item := fake.items["1"]
	assert.Equal(t, "1", aws.StringValue(item["id"].S))
	assert.Equal(t, "PENDING", aws.StringValue(item["status"].S))

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, &rec, got)
}

func TestTaskStore_EmptyAttributesAreOmitted(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, store.Record{ID: "1"}))

	item := fake.items["1"]
	assert.NotContains(t, item, "status")
	assert.NotContains(t, item, "title")

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, &store.Record{ID: "1"}, got)
}

func TestTaskStore_GetMissing(t *testing.T) {
	s, _ := newTestStore(t)
	got, err := s.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestTaskStore_PutRejectsEmptyID(t *testing.T) {
	s, fake := newTestStore(t)
	err := s.Put(context.Background(), store.Record{Title: "A"})
	assert.ErrorIs(t, err, store.ErrInvalidRecord)
	assert.Empty(t, fake.items)
}

func TestTaskStore_DeleteIsIdempotent(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()
	seed(t, s, store.Record{ID: "1"})

	require.NoError(t, s.Delete(ctx, "1"))
	require.NoError(t, s.Delete(ctx, "1"))
	assert.Empty(t, fake.items)
}

func TestTaskStore_Scan(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()
	seed(t, s,
		store.Record{ID: "1", Status: "PENDING"},
		store.Record{ID: "2", Status: "DONE"},
		store.Record{ID: "3", Status: "PENDING"},
		store.Record{ID: "4"},
		store.Record{ID: "5", Status: "DONE"},
	)

	t.Run("unbounded scan reads every page", func(t *testing.T) {
		records, err := s.Scan(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(records))
		assert.Nil(t, fake.scans[len(fake.scans)-1].Limit)
	})

	t.Run("limit is a single bounded request", func(t *testing.T) {
		records, err := s.Scan(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, ids(records))
		assert.Equal(t, int64(2), aws.Int64Value(fake.scans[len(fake.scans)-1].Limit))
	})

	t.Run("empty table", func(t *testing.T) {
		empty, _ := newTestStore(t)
		records, err := empty.Scan(ctx, 0)
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestTaskStore_QueryByStatus(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()
	seed(t, s,
		store.Record{ID: "1", Status: "DONE"},
		store.Record{ID: "2", Status: "done"},
		store.Record{ID: "3", Status: "DONE"},
		store.Record{ID: "4"},
	)

	records, err := s.QueryByStatus(ctx, "DONE")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(records))

	query := fake.queries[0]
	assert.Equal(t, DefaultStatusIndex, aws.StringValue(query.IndexName))
	assert.Equal(t, "#s = :s", aws.StringValue(query.KeyConditionExpression))
	assert.Equal(t, "status", aws.StringValue(query.ExpressionAttributeNames["#s"]))

	none, err := s.QueryByStatus(ctx, "ARCHIVED")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTaskStore_FailuresAreUnavailable(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()
	fake.err = awserr.New(dynamodb.ErrCodeProvisionedThroughputExceededException, "slow down", nil)

	_, err := s.Get(ctx, "1")
	assert.ErrorIs(t, err, store.ErrUnavailable)

	assert.ErrorIs(t, s.Put(ctx, store.Record{ID: "1"}), store.ErrUnavailable)
	assert.ErrorIs(t, s.Delete(ctx, "1"), store.ErrUnavailable)

	_, err = s.Scan(ctx, 0)
	assert.ErrorIs(t, err, store.ErrUnavailable)

	_, err = s.Scan(ctx, 5)
	assert.ErrorIs(t, err, store.ErrUnavailable)

	_, err = s.QueryByStatus(ctx, "DONE")
	assert.ErrorIs(t, err, store.ErrUnavailable)

	assert.ErrorIs(t, s.EnsureTable(ctx), store.ErrUnavailable)
}

func TestTaskStore_EnsureTable(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureTable(ctx))
	require.NotNil(t, fake.created)
	assert.True(t, fake.waited)

	in := fake.created
	assert.Equal(t, DefaultTable, aws.StringValue(in.TableName))
	assert.Equal(t, dynamodb.BillingModePayPerRequest, aws.StringValue(in.BillingMode))
	require.Len(t, in.KeySchema, 1)
	assert.Equal(t, "id", aws.StringValue(in.KeySchema[0].AttributeName))
	require.Len(t, in.GlobalSecondaryIndexes, 1)
	gsi := in.GlobalSecondaryIndexes[0]
	assert.Equal(t, DefaultStatusIndex, aws.StringValue(gsi.IndexName))
	assert.Equal(t, "status", aws.StringValue(gsi.KeySchema[0].AttributeName))
	assert.Equal(t, dynamodb.ProjectionTypeAll, aws.StringValue(gsi.Projection.ProjectionType))

	fake.waited = false
	require.NoError(t, s.EnsureTable(ctx), "an existing table is not an error")
	assert.False(t, fake.waited)
}

func TestMapError(t *testing.T) {
	assert.NoError(t, MapError("get", nil))

	validation := awserr.New("ValidationException", "One or more parameter values were invalid", nil)
	err := MapError("put", validation)
	assert.ErrorIs(t, err, store.ErrInvalidRecord)
	assert.NotErrorIs(t, err, store.ErrUnavailable)

	notFound := awserr.New(dynamodb.ErrCodeResourceNotFoundException, "Requested resource not found", nil)
	err = MapError("scan", notFound)
	assert.ErrorIs(t, err, store.ErrUnavailable)

	err = MapError("get", context.Canceled)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)

	var storeErr *store.StoreError
	require.ErrorAs(t, MapError("delete", errors.New("x")), &storeErr)
	assert.Equal(t, "dynamodb", storeErr.Backend)
	assert.Equal(t, "delete", storeErr.Operation)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(config.StoreConfig{
		Region:         "us-east-1",
		Endpoint:       "http://localhost:4566",
		MaxRetries:     0,
		RequestTimeout: time.Second,
	})
	require.NoError(t, err)

	ddb, ok := client.(*dynamodb.DynamoDB)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:4566", ddb.Endpoint)
	assert.Equal(t, "us-east-1", aws.StringValue(ddb.Config.Region))
	assert.Equal(t, 0, aws.IntValue(ddb.Config.MaxRetries))
}
