package mocks

import (
	"context"
	"sync"

	"github.com/kishore-rajkumar/task-manager-api/internal/domain"
)

// MockTaskService implements service.TaskService for handler tests.
type MockTaskService struct {
	// Custom behavior functions
	CreateFn  func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ReadFn    func(ctx context.Context, id string) (*domain.Task, error)
	UpdateFn  func(ctx context.Context, id string, task *domain.Task) (*domain.Task, error)
	DeleteFn  func(ctx context.Context, id string) error
	FindAllFn func(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, error)

	// Default response values
	Task  *domain.Task
	Tasks []*domain.Task
	Err   error

	// Call tracking for verification
	mu           sync.Mutex
	ReceivedIDs  []string
	ReceivedTask []*domain.Task
	Filters      []domain.ListFilter
}

// MockTaskServiceOption configures a MockTaskService
type MockTaskServiceOption func(*MockTaskService)

// WithTask sets the default task returned by Create, Read and Update
func WithTask(task *domain.Task) MockTaskServiceOption {
	return func(m *MockTaskService) {
		m.Task = task
	}
}

// WithTasks sets the default result of FindAll
func WithTasks(tasks ...*domain.Task) MockTaskServiceOption {
	return func(m *MockTaskService) {
		m.Tasks = tasks
	}
}

// WithError sets the default error returned by every method
func WithError(err error) MockTaskServiceOption {
	return func(m *MockTaskService) {
		m.Err = err
	}
}

// NewMockTaskService creates a new MockTaskService with the given options
func NewMockTaskService(opts ...MockTaskServiceOption) *MockTaskService {
	m := &MockTaskService{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockTaskService) track(id string, task *domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id != "" {
		m.ReceivedIDs = append(m.ReceivedIDs, id)
	}
	if task != nil {
		m.ReceivedTask = append(m.ReceivedTask, task)
	}
}

// Create implements service.TaskService
func (m *MockTaskService) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m.track("", task)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Task, m.Err
}

// Read implements service.TaskService
func (m *MockTaskService) Read(ctx context.Context, id string) (*domain.Task, error) {
	m.track(id, nil)
	if m.ReadFn != nil {
		return m.ReadFn(ctx, id)
	}
	return m.Task, m.Err
}

// Update implements service.TaskService
func (m *MockTaskService) Update(ctx context.Context, id string, task *domain.Task) (*domain.Task, error) {
	m.track(id, task)
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, task)
	}
	return m.Task, m.Err
}

// Delete implements service.TaskService
func (m *MockTaskService) Delete(ctx context.Context, id string) error {
	m.track(id, nil)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// FindAll implements service.TaskService
func (m *MockTaskService) FindAll(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, error) {
	m.mu.Lock()
	m.Filters = append(m.Filters, filter)
	m.mu.Unlock()
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx, filter)
	}
	return m.Tasks, m.Err
}
