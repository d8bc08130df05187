package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/kishore-rajkumar/task-manager-api/internal/api"
	apiMiddleware "github.com/kishore-rajkumar/task-manager-api/internal/api/middleware"
	"github.com/kishore-rajkumar/task-manager-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Extra middleware runs before tracing, so it may prepare headers the trace
// middleware reads. Recoverer sits inside Trace so a recovered panic still
// carries a trace ID and gets a completion log.
func (app *application) setupRouter(extra ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(extra...)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", shared.TraceIDHeader},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         300,
	}).Handler)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	r.Route("/tasks", taskHandler.Routes)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
