package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kishore-rajkumar/task-manager-api/internal/api/shared"
	"github.com/kishore-rajkumar/task-manager-api/internal/domain"
	"github.com/kishore-rajkumar/task-manager-api/internal/platform/logger"
	"github.com/kishore-rajkumar/task-manager-api/internal/redact"
	"github.com/kishore-rajkumar/task-manager-api/internal/service"
)

const taskHandlerComponent = "task_handler"

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", taskHandlerComponent)),
	}
}

// Routes mounts the task endpoints on r.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateTask)
	r.Get("/", h.ListTasks)
	r.Get("/{id}", h.GetTask)
	r.Put("/{id}", h.UpdateTask)
	r.Delete("/{id}", h.DeleteTask)
}

// CreateTask handles POST /tasks requests.
// A JSON null body reaches the service as a nil task and is rejected there.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.decodeTask(w, r)
	if !ok {
		return
	}

	created, err := h.taskService.Create(r.Context(), task)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}

// ListTasks handles GET /tasks requests with optional status and limit
// query parameters.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.ForComponent(r.Context(), h.logger, taskHandlerComponent)

	query := parseListTasksQuery(r)
	if err := shared.ValidateRequest(&query); err != nil {
		log.Debug("invalid list query", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	filter, err := query.Filter()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	tasks, err := h.taskService.FindAll(r.Context(), filter)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks", slog.String("filter", filter.String()), slog.Int("count", len(tasks)))
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.Read(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateTask handles PUT /tasks/{id} requests.
// The path ID wins over any ID in the body.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.decodeTask(w, r)
	if !ok {
		return
	}

	updated, err := h.taskService.Update(r.Context(), chi.URLParam(r, "id"), task)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeTask reads the request body into a task pointer. It writes a 400
// response and returns false when the body is missing or malformed.
func (h *TaskHandler) decodeTask(w http.ResponseWriter, r *http.Request) (*domain.Task, bool) {
	var task *domain.Task
	if err := shared.DecodeJSON(w, r, &task); err != nil {
		logger.ForComponent(r.Context(), h.logger, taskHandlerComponent).Debug("invalid request body",
			slog.String("error", redact.Error(err)))

		message := "Invalid request format"
		if errors.Is(err, shared.ErrEmptyBody) {
			message = "Request body is required"
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, message)
		return nil, false
	}
	return task, true
}

func (h *TaskHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
