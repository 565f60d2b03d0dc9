package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIdHeader = "X-Request-Id"

var loggerCtxKey = &contextKey{"logger"}

// NewRequestLoggerMiddleware attaches a logger tagged with the request id to the request context.
// An incoming X-Request-Id header is reused, otherwise a new id is generated.
func NewRequestLoggerMiddleware(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestId := r.Header.Get(requestIdHeader)
			if requestId == "" {
				requestId = uuid.NewString()
			}
			w.Header().Set(requestIdHeader, requestId)

			requestLogger := logger.WithFields(logrus.Fields{
				"request_id": requestId,
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			start := time.Now()
			next.ServeHTTP(w, r.WithContext(WithLogger(r.Context(), requestLogger)))
			requestLogger.WithField("duration", time.Since(start).String()).Debug("request served")
		})
	}
}

func WithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// LoggerFromContext returns the request logger, or the standard logger outside of a request.
func LoggerFromContext(ctx context.Context) logrus.FieldLogger {
	logger, ok := ctx.Value(loggerCtxKey).(logrus.FieldLogger)
	if !ok {
		return logrus.StandardLogger()
	}
	return logger
}
