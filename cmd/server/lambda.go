package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/kishore-rajkumar/task-manager-api/internal/api/shared"
)

// lambdaHandler adapts API Gateway proxy events to the HTTP router.
type lambdaHandler struct {
	adapter *httpadapter.HandlerAdapter
}

// newLambdaHandler builds the proxy handler and logs the time spent since
// process start, which on Lambda is the cold-start initialization cost.
func (app *application) newLambdaHandler() *lambdaHandler {
	h := &lambdaHandler{
		adapter: httpadapter.New(app.setupRouter(apiGatewayTraceID)),
	}
	app.logger.Info("Lambda handler initialized",
		"cold_start_ms", time.Since(processStart).Milliseconds())
	return h
}

// Handle serves one API Gateway proxy event.
func (h *lambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return h.adapter.ProxyWithContext(ctx, req)
}

// RunLambda hands control to the Lambda runtime. It only returns if the
// runtime loop cannot start.
func (app *application) RunLambda() error {
	lambda.Start(app.newLambdaHandler().Handle)
	return nil
}

// apiGatewayTraceID seeds the trace ID header from the API Gateway request ID
// so responses and logs line up with the gateway's access logs.
func apiGatewayTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(shared.TraceIDHeader) == "" {
			if gw, ok := core.GetAPIGatewayContextFromContext(r.Context()); ok && gw.RequestID != "" {
				r.Header.Set(shared.TraceIDHeader, gw.RequestID)
			}
		}
		next.ServeHTTP(w, r)
	})
}
