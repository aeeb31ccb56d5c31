package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDKey is the header and context key the request ID travels under.
const RequestIDKey = "X-Request-ID"

// FromContext returns the request-scoped logger set by Middleware. Handlers
// called outside the middleware chain fall back to the global logger tagged
// with whatever request ID is available.
func FromContext(c echo.Context) *zap.Logger {
	if logger, ok := c.Get("logger").(*zap.Logger); ok {
		return logger
	}

	requestID := c.Response().Header().Get(RequestIDKey)
	if requestID == "" {
		requestID = c.Request().Header.Get(RequestIDKey)
	}
	if requestID == "" {
		requestID = "unknown"
	}
	return GetLogger().With(zap.String("request_id", requestID))
}
