package middleware

import (
	"net/http"
	"time"

	"github.com/akwaba/listing-service/internal/platform/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func Logging(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			if rec.status >= http.StatusInternalServerError {
				log.Error("HTTP request failed", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", duration)
			} else {
				log.Info("HTTP request completed", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", duration)
			}
		})
	}
}
