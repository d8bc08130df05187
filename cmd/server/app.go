package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/kishore-rajkumar/task-manager-api/internal/config"
	"github.com/kishore-rajkumar/task-manager-api/internal/platform/dynamodb"
	"github.com/kishore-rajkumar/task-manager-api/internal/platform/postgres"
	"github.com/kishore-rajkumar/task-manager-api/internal/service"
	"github.com/kishore-rajkumar/task-manager-api/internal/store"
	"github.com/kishore-rajkumar/task-manager-api/internal/store/memory"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is only set for the postgres backend.
	db *sql.DB

	taskStore   store.TaskStore
	taskService service.TaskService
}

// newApplication creates the store client once and wires the repository and
// service on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.taskStore, err = app.setupTaskStore(ctx)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	strategy := service.ListByScan
	if cfg.Store.StatusIndexLookup {
		strategy = service.ListByStatusIndex
	}

	repo, err := service.NewTaskRepository(app.taskStore, logger, service.WithListStrategy(strategy))
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task repository: %w", err)
	}

	app.taskService, err = service.NewTaskService(repo, logger,
		service.WithUpdateRequiresExisting(cfg.Tasks.UpdateRequiresExisting))
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"store_backend", cfg.Store.Backend,
		"list_strategy", strategy.String(),
		"update_requires_existing", cfg.Tasks.UpdateRequiresExisting)
	return app, nil
}

// setupTaskStore builds the configured backend and, when asked to, creates
// its table or schema.
func (app *application) setupTaskStore(ctx context.Context) (store.TaskStore, error) {
	cfg := app.config

	switch cfg.Store.Backend {
	case config.BackendDynamoDB:
		client, err := dynamodb.NewClient(cfg.Store)
		if err != nil {
			return nil, fmt.Errorf("failed to create dynamodb client: %w", err)
		}
		s, err := dynamodb.NewTaskStore(client, cfg.Store.Table, cfg.Store.StatusIndex, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create dynamodb task store: %w", err)
		}
		if cfg.Store.EnsureTable {
			if err := s.EnsureTable(ctx); err != nil {
				return nil, fmt.Errorf("failed to ensure task table: %w", err)
			}
		}
		app.logger.Info("DynamoDB task store ready",
			"region", cfg.Store.Region,
			"endpoint_override", cfg.Store.Endpoint != "")
		return s, nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL, postgres.DefaultPoolConfig())
		if err != nil {
			return nil, err
		}
		app.db = db
		s := postgres.NewTaskStore(db, cfg.Store.Table, app.logger)
		if cfg.Store.EnsureTable {
			if err := s.EnsureSchema(ctx); err != nil {
				return nil, fmt.Errorf("failed to ensure task schema: %w", err)
			}
		}
		app.logger.Info("Database connection established")
		return s, nil

	case config.BackendMemory:
		app.logger.Warn("Using in-memory task store; data is lost on restart")
		return memory.NewTaskStore(), nil

	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}

// Run serves the API over HTTP until the context is cancelled or a
// termination signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.db = nil
	}
}
