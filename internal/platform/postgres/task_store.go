package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kishore-rajkumar/task-manager-api/internal/platform/logger"
	"github.com/kishore-rajkumar/task-manager-api/internal/store"
)

const storeComponent = "postgres_task_store"

// DefaultTable is the table used when none is configured.
const DefaultTable = "tasks"

// TaskStore implements store.TaskStore on a single PostgreSQL table.
type TaskStore struct {
	db     DBTX
	table  string
	logger *slog.Logger
}

// Compile-time check to ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore over db. An empty table name selects
// DefaultTable. The table name is interpolated into SQL and must come from
// trusted configuration.
func NewTaskStore(db DBTX, table string, log *slog.Logger) *TaskStore {
	if table == "" {
		table = DefaultTable
	}
	if log == nil {
		log = slog.Default()
	}
	return &TaskStore{
		db:     db,
		table:  table,
		logger: log.With(slog.String("component", storeComponent)),
	}
}

// EnsureSchema creates the table and its status index when they do not exist.
func (s *TaskStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT ''
		)`, s.table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_status_idx ON %s (status)`, s.table, s.table),
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return MapError("ensure_schema", err)
		}
	}
	s.logger.Info("task schema ready", slog.String("table", s.table))
	return nil
}

// Get implements store.TaskStore.
func (s *TaskStore) Get(ctx context.Context, id string) (*store.Record, error) {
	query := fmt.Sprintf(`SELECT id, title, description, status FROM %s WHERE id = $1`, s.table)

	var r store.Record
	err := s.db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Title, &r.Description, &r.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.ForComponent(ctx, s.logger, storeComponent).Error("failed to get task record",
			slog.String("task_id", id),
			slog.String("error", err.Error()))
		return nil, MapError("get", err)
	}
	return &r, nil
}

// Put implements store.TaskStore as a single upsert statement.
func (s *TaskStore) Put(ctx context.Context, record store.Record) error {
	if record.ID == "" {
		return store.NewStoreError(backendName, "put", "record has no id", store.ErrInvalidRecord)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, description, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
			description = EXCLUDED.description,
			status = EXCLUDED.status
	`, s.table)

	if _, err := s.db.ExecContext(ctx, query, record.ID, record.Title, record.Description, record.Status); err != nil {
		logger.ForComponent(ctx, s.logger, storeComponent).Error("failed to put task record",
			slog.String("task_id", record.ID),
			slog.String("error", err.Error()))
		return MapError("put", err)
	}
	return nil
}

// Delete implements store.TaskStore. Zero affected rows is not an error.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		logger.ForComponent(ctx, s.logger, storeComponent).Error("failed to delete task record",
			slog.String("task_id", id),
			slog.String("error", err.Error()))
		return MapError("delete", err)
	}
	return nil
}

// Scan implements store.TaskStore. Rows come back in whatever order the
// planner chooses.
func (s *TaskStore) Scan(ctx context.Context, limit int) ([]store.Record, error) {
	query := fmt.Sprintf(`SELECT id, title, description, status FROM %s`, s.table)
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	return s.query(ctx, "scan", query, args...)
}

// QueryByStatus implements store.TaskStore using the status index.
func (s *TaskStore) QueryByStatus(ctx context.Context, status string) ([]store.Record, error) {
	query := fmt.Sprintf(`SELECT id, title, description, status FROM %s WHERE status = $1`, s.table)
	return s.query(ctx, "query", query, status)
}

func (s *TaskStore) query(ctx context.Context, op, query string, args ...any) ([]store.Record, error) {
	log := logger.ForComponent(ctx, s.logger, storeComponent)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query task records", slog.String("operation", op), slog.String("error", err.Error()))
		return nil, MapError(op, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	records := make([]store.Record, 0)
	for rows.Next() {
		var r store.Record
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.Status); err != nil {
			return nil, MapError(op, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(op, err)
	}
	return records, nil
}
