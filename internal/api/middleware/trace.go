package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kishore-rajkumar/task-manager-api/internal/api/shared"
	"github.com/kishore-rajkumar/task-manager-api/internal/platform/logger"
)

// Trace returns middleware that assigns each request a trace ID and a
// request-scoped logger carrying it.
//
// A well-formed X-Trace-Id header from the caller is reused; otherwise a new
// ID is generated. The effective ID is echoed in the response header, and the
// request is logged again on completion with its status and duration.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(shared.TraceIDHeader)
			if !shared.ValidTraceID(traceID) {
				traceID = shared.NewTraceID()
			}

			log := base.With(slog.String("trace_id", traceID))
			ctx := shared.WithTraceID(r.Context(), traceID)
			ctx = logger.WithContext(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
