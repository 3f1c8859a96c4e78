package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pontetech/mission-control/internal/api/shared"
	"github.com/pontetech/mission-control/internal/platform/logger"
)

// NewTraceMiddleware assigns each request a trace ID, returns it in the
// X-Trace-Id header and stores a request logger carrying it in the context.
// Completion of every request is logged with its status and duration.
//
// Apply it early in the chain so later handlers and middleware see the
// trace ID.
func NewTraceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			traceID := shared.NewTraceID()

			reqLog := log.With(slog.String("trace_id", traceID))
			if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
				reqLog = reqLog.With(slog.String("request_id", reqID))
			}

			ctx := shared.WithTraceID(r.Context(), traceID)
			ctx = logger.WithLogger(ctx, reqLog)

			w.Header().Set(shared.TraceIDHeader, traceID)
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				reqLog.Info("request completed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status_code", status),
					slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000))
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}
