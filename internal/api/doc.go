// Package api handles incoming HTTP requests for the task resource, request
// validation, and response formatting. It acts as an adapter between HTTP
// clients and the task service, translating service errors to status codes
// without echoing internal error text.
package api
