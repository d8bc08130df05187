// Package dynamodb provides the Amazon DynamoDB implementation of
// store.TaskStore, built on aws-sdk-go.
//
// Each task is one item keyed by the string attribute "id". A global
// secondary index keyed by "status" serves QueryByStatus. Items with an empty
// status omit the attribute and so never appear in the index.
package dynamodb
