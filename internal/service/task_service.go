package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kishore-rajkumar/task-manager-api/internal/domain"
	"github.com/kishore-rajkumar/task-manager-api/internal/platform/logger"
)

const taskServiceComponent = "task_service"

// TaskService provides task-related operations
type TaskService interface {
	// Create assigns a fresh ID to task, overwriting any caller-supplied ID,
	// and persists it. A nil task fails with ErrInvalidInput.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Read returns the task with the given ID.
	// A blank ID fails with ErrInvalidInput, an unknown ID with ErrTaskNotFound.
	Read(ctx context.Context, id string) (*domain.Task, error)

	// Update replaces the task stored under id in full. The ID in the payload
	// is ignored. Omitted fields are stored as empty values.
	Update(ctx context.Context, id string, task *domain.Task) (*domain.Task, error)

	// Delete removes the task with the given ID. Unknown IDs are not an error.
	Delete(ctx context.Context, id string) error

	// FindAll lists tasks according to filter.
	FindAll(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, error)
}

// IDGenerator produces identifiers for new tasks.
type IDGenerator func() string

// TaskServiceOption configures a TaskService.
type TaskServiceOption func(*taskServiceImpl)

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(gen IDGenerator) TaskServiceOption {
	return func(s *taskServiceImpl) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithUpdateRequiresExisting makes Update fail with ErrTaskNotFound when no
// task exists under the ID, instead of creating one.
func WithUpdateRequiresExisting(required bool) TaskServiceOption {
	return func(s *taskServiceImpl) {
		s.updateRequiresExisting = required
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo                   TaskRepository
	newID                  IDGenerator
	updateRequiresExisting bool
	logger                 *slog.Logger
}

// NewTaskService creates a new TaskService
// It returns an error if the repository is nil.
func NewTaskService(
	repo TaskRepository,
	logger *slog.Logger,
	opts ...TaskServiceOption,
) (TaskService, error) {
	if repo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "repo cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &taskServiceImpl{
		repo:   repo,
		newID:  uuid.NewString,
		logger: logger.With(slog.String("component", taskServiceComponent)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, taskServiceComponent)

	if task == nil {
		log.Debug("rejecting create with absent task")
		return nil, invalidInput("task", "cannot be null")
	}

	created := task.Clone()
	created.ID = s.newID()

	if err := s.repo.Save(ctx, created); err != nil {
		log.Error("failed to save new task",
			slog.String("error", err.Error()),
			slog.String("task_id", created.ID))
		return nil, NewTaskServiceError("create", "failed to save task", err)
	}

	log.Info("task created", slog.String("task_id", created.ID))
	return created, nil
}

// Read implements TaskService.Read
func (s *taskServiceImpl) Read(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, taskServiceComponent)

	if isBlank(id) {
		return nil, invalidInput("id", "cannot be null or empty")
	}

	task, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return nil, NewTaskServiceError("read", "failed to retrieve task", err)
	}
	if task == nil {
		log.Debug("task not found", slog.String("task_id", id))
		return nil, ErrTaskNotFound
	}

	return task, nil
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(ctx context.Context, id string, task *domain.Task) (*domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, taskServiceComponent)

	if isBlank(id) {
		return nil, invalidInput("id", "cannot be null or empty")
	}
	if task == nil {
		return nil, invalidInput("task", "cannot be null")
	}

	if s.updateRequiresExisting {
		existing, err := s.repo.Get(ctx, id)
		if err != nil {
			log.Error("failed to check task before update",
				slog.String("error", err.Error()),
				slog.String("task_id", id))
			return nil, NewTaskServiceError("update", "failed to retrieve task", err)
		}
		if existing == nil {
			log.Debug("refusing to update missing task", slog.String("task_id", id))
			return nil, ErrTaskNotFound
		}
	}

	updated := task.Clone()
	updated.ID = id

	if err := s.repo.Save(ctx, updated); err != nil {
		log.Error("failed to save task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return nil, NewTaskServiceError("update", "failed to save task", err)
	}

	log.Info("task updated", slog.String("task_id", id))
	return updated, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, id string) error {
	log := logger.ForComponent(ctx, s.logger, taskServiceComponent)

	if isBlank(id) {
		return invalidInput("id", "cannot be null or empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return NewTaskServiceError("delete", "failed to delete task", err)
	}

	log.Info("task deleted", slog.String("task_id", id))
	return nil
}

// FindAll implements TaskService.FindAll
func (s *taskServiceImpl) FindAll(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		logger.ForComponent(ctx, s.logger, taskServiceComponent).Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("filter", filter.String()))
		return nil, NewTaskServiceError("find_all", fmt.Sprintf("failed to list tasks (%s)", filter), err)
	}
	return tasks, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
