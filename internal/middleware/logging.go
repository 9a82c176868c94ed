package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

const loggerContextKey contextKey = "logger"

// Logger logs every request with its outcome and puts a request-scoped
// entry in the context.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"remote_ip":  getClientIP(r),
			"request_id": chimw.GetReqID(r.Context()),
		})

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), loggerContextKey, entry)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := log.Fields{
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"bytes":       ww.BytesWritten(),
		}
		switch {
		case status >= 500:
			entry.WithFields(fields).Error("Request failed")
		case status >= 400:
			entry.WithFields(fields).Warn("Request rejected")
		default:
			entry.WithFields(fields).Info("Request completed")
		}
	})
}

// LoggerFromContext returns the request-scoped log entry, or the standard logger.
func LoggerFromContext(ctx context.Context) *log.Entry {
	if entry, ok := ctx.Value(loggerContextKey).(*log.Entry); ok {
		return entry
	}
	return log.NewEntry(log.StandardLogger())
}
