// Package main implements the entry point for the task manager API server.
// The same binary serves plain HTTP or runs behind API Gateway on AWS Lambda,
// depending on the environment it starts in.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kishore-rajkumar/task-manager-api/internal/config"
	"github.com/kishore-rajkumar/task-manager-api/internal/platform/logger"
)

// lambdaRuntimeEnv is set by the Lambda execution environment.
const lambdaRuntimeEnv = "AWS_LAMBDA_RUNTIME_API"

// processStart marks the beginning of initialization for cold-start timing.
var processStart = time.Now()

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run loads configuration, builds the application once, and serves it in
// the mode matching the environment.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_backend", cfg.Store.Backend,
		"store_table", cfg.Store.Table,
		"status_index_lookup", cfg.Store.StatusIndexLookup)

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	if onLambda() {
		return app.RunLambda()
	}
	return app.Run(ctx)
}

func onLambda() bool {
	return os.Getenv(lambdaRuntimeEnv) != ""
}
