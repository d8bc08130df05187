package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kishore-rajkumar/task-manager-api/internal/domain"
	"github.com/kishore-rajkumar/task-manager-api/internal/platform/logger"
	"github.com/kishore-rajkumar/task-manager-api/internal/store"
)

const taskRepositoryComponent = "task_repository"

// ListStrategy selects how TaskRepository.List applies a status filter.
type ListStrategy int

const (
	// ListByScan reads up to limit raw records and then keeps those whose
	// status matches case-insensitively. The limit bounds the read, not the
	// filtered result, so a filtered page may hold fewer than limit tasks.
	ListByScan ListStrategy = iota

	// ListByStatusIndex queries the secondary index for the exact status and
	// then truncates to limit. Index keys are case-sensitive.
	ListByStatusIndex
)

// String implements fmt.Stringer.
func (s ListStrategy) String() string {
	switch s {
	case ListByScan:
		return "scan"
	case ListByStatusIndex:
		return "status_index"
	default:
		return fmt.Sprintf("ListStrategy(%d)", int(s))
	}
}

// TaskRepository defines the persistence-facing operations of the service layer.
// It owns the mapping between domain.Task and store.Record and is the only
// component that talks to a store.TaskStore.
type TaskRepository interface {
	// Get retrieves a task by ID. Returns (nil, nil) when the task is absent.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// Save upserts the task by ID, overwriting any existing record in full.
	Save(ctx context.Context, task *domain.Task) error

	// Delete removes the task by ID. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error

	// List returns tasks according to filter. See ListStrategy for how a
	// status filter and a limit compose.
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, error)
}

// RepositoryOption configures a TaskRepository.
type RepositoryOption func(*taskRepository)

// WithListStrategy sets the strategy used for status-filtered listings.
func WithListStrategy(strategy ListStrategy) RepositoryOption {
	return func(r *taskRepository) {
		r.strategy = strategy
	}
}

// taskRepository adapts a store.TaskStore to the TaskRepository interface
type taskRepository struct {
	store    store.TaskStore
	strategy ListStrategy
	logger   *slog.Logger
}

// NewTaskRepository creates a TaskRepository backed by taskStore.
// It returns an error if taskStore is nil.
func NewTaskRepository(
	taskStore store.TaskStore,
	logger *slog.Logger,
	opts ...RepositoryOption,
) (TaskRepository, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("%w: taskStore cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &taskRepository{
		store:    taskStore,
		strategy: ListByScan,
		logger:   logger.With(slog.String("component", taskRepositoryComponent)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Get implements TaskRepository.Get
func (r *taskRepository) Get(ctx context.Context, id string) (*domain.Task, error) {
	record, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return recordToTask(*record), nil
}

// Save implements TaskRepository.Save
func (r *taskRepository) Save(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return fmt.Errorf("%w: task cannot be nil", domain.ErrValidation)
	}
	if err := task.Validate(); err != nil {
		return err
	}
	return r.store.Put(ctx, taskToRecord(task))
}

// Delete implements TaskRepository.Delete
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

// List implements TaskRepository.List
func (r *taskRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, error) {
	log := logger.ForComponent(ctx, r.logger, taskRepositoryComponent)

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	// The status index is sparse: tasks without a status never appear in it,
	// so an empty status filter is always answered by the scan path.
	if filter.HasStatus() && *filter.Status != "" && r.strategy == ListByStatusIndex {
		log.Debug("listing tasks via status index", slog.String("filter", filter.String()))
		return r.listByIndex(ctx, filter)
	}

	log.Debug("listing tasks via scan", slog.String("filter", filter.String()))
	return r.listByScan(ctx, filter)
}

// listByScan applies the limit to the raw scan and only then filters by status.
func (r *taskRepository) listByScan(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, error) {
	limit := 0
	if filter.HasLimit() {
		limit = *filter.Limit
	}

	records, err := r.store.Scan(ctx, limit)
	if err != nil {
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(records))
	for _, record := range records {
		task := recordToTask(record)
		if filter.HasStatus() && !task.HasStatus(*filter.Status) {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// listByIndex queries the status index and then applies the limit.
func (r *taskRepository) listByIndex(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, error) {
	records, err := r.store.QueryByStatus(ctx, *filter.Status)
	if err != nil {
		return nil, err
	}

	if filter.HasLimit() && len(records) > *filter.Limit {
		records = records[:*filter.Limit]
	}

	tasks := make([]*domain.Task, 0, len(records))
	for _, record := range records {
		tasks = append(tasks, recordToTask(record))
	}
	return tasks, nil
}

func taskToRecord(task *domain.Task) store.Record {
	return store.Record{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
	}
}

func recordToTask(record store.Record) *domain.Task {
	return &domain.Task{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		Status:      record.Status,
	}
}
