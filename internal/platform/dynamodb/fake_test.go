package dynamodb

import (
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// fakeDynamoDB is a small in-memory stand-in for the DynamoDB API. Methods
// the store does not call fall through to the embedded nil interface and
// panic.
type fakeDynamoDB struct {
	dynamodbiface.DynamoDBAPI

	mu       sync.Mutex
	items    map[string]map[string]*dynamodb.AttributeValue
	order    []string
	pageSize int

	// err, when set, fails every call.
	err error

	tableExists bool
	created     *dynamodb.CreateTableInput
	waited      bool
	scans       []*dynamodb.ScanInput
	queries     []*dynamodb.QueryInput
}

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{
		items:    make(map[string]map[string]*dynamodb.AttributeValue),
		pageSize: 2,
	}
}

func (f *fakeDynamoDB) GetItemWithContext(_ aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[aws.StringValue(in.Key["id"].S)]}, nil
}

func (f *fakeDynamoDB) PutItemWithContext(_ aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := in.Item["status"]; ok && s.S == nil {
		return nil, awserr.New("ValidationException", "status must be a string", nil)
	}
	id := aws.StringValue(in.Item["id"].S)
	if _, exists := f.items[id]; !exists {
		f.order = append(f.order, id)
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) DeleteItemWithContext(_ aws.Context, in *dynamodb.DeleteItemInput, _ ...request.Option) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	id := aws.StringValue(in.Key["id"].S)
	if _, ok := f.items[id]; ok {
		delete(f.items, id)
		for i, key := range f.order {
			if key == id {
				f.order = append(f.order[:i], f.order[i+1:]...)
				break
			}
		}
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamoDB) all() []map[string]*dynamodb.AttributeValue {
	out := make([]map[string]*dynamodb.AttributeValue, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out
}

func (f *fakeDynamoDB) ScanWithContext(_ aws.Context, in *dynamodb.ScanInput, _ ...request.Option) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans = append(f.scans, in)
	if f.err != nil {
		return nil, f.err
	}
	items := f.all()
	if in.Limit != nil && int(*in.Limit) < len(items) {
		items = items[:*in.Limit]
	}
	return &dynamodb.ScanOutput{Items: items}, nil
}

func (f *fakeDynamoDB) ScanPagesWithContext(_ aws.Context, in *dynamodb.ScanInput, fn func(*dynamodb.ScanOutput, bool) bool, _ ...request.Option) error {
	f.mu.Lock()
	f.scans = append(f.scans, in)
	items, err := f.all(), f.err
	f.mu.Unlock()
	if err != nil {
		return err
	}

	for start := 0; ; start += f.pageSize {
		end := start + f.pageSize
		if end >= len(items) {
			fn(&dynamodb.ScanOutput{Items: items[start:]}, true)
			return nil
		}
		if !fn(&dynamodb.ScanOutput{Items: items[start:end]}, false) {
			return nil
		}
	}
}

func (f *fakeDynamoDB) QueryPagesWithContext(_ aws.Context, in *dynamodb.QueryInput, fn func(*dynamodb.QueryOutput, bool) bool, _ ...request.Option) error {
	f.mu.Lock()
	f.queries = append(f.queries, in)
	items, err := f.all(), f.err
	f.mu.Unlock()
	if err != nil {
		return err
	}

	want := aws.StringValue(in.ExpressionAttributeValues[":s"].S)
	var matched []map[string]*dynamodb.AttributeValue
	for _, it := range items {
		if s, ok := it["status"]; ok && aws.StringValue(s.S) == want {
			matched = append(matched, it)
		}
	}
	fn(&dynamodb.QueryOutput{Items: matched}, true)
	return nil
}

func (f *fakeDynamoDB) CreateTableWithContext(_ aws.Context, in *dynamodb.CreateTableInput, _ ...request.Option) (*dynamodb.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.tableExists {
		return nil, awserr.New(dynamodb.ErrCodeResourceInUseException, "Table already exists", nil)
	}
	f.tableExists = true
	f.created = in
	return &dynamodb.CreateTableOutput{}, nil
}

func (f *fakeDynamoDB) WaitUntilTableExistsWithContext(_ aws.Context, _ *dynamodb.DescribeTableInput, _ ...request.WaiterOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waited = true
	return nil
}

