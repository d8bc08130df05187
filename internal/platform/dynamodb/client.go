package dynamodb

import (
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/kishore-rajkumar/task-manager-api/internal/config"
)

// NewClient builds a DynamoDB client from the store configuration.
//
// The client is safe for concurrent use and is meant to be created once per
// process. Retries are capped at cfg.MaxRetries and every HTTP round trip is
// bounded by cfg.RequestTimeout. A non-empty cfg.Endpoint replaces the
// regional endpoint, which is how local stacks are reached.
func NewClient(cfg config.StoreConfig) (dynamodbiface.DynamoDBAPI, error) {
	awsCfg := aws.NewConfig().
		WithRegion(cfg.Region).
		WithMaxRetries(cfg.MaxRetries).
		WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout})

	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return dynamodb.New(sess), nil
}
