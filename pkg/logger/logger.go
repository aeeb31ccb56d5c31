package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cms-service/pkg/config"
)

var log *zap.Logger

// InitLogger initializes the global logger. Every entry carries the service
// name so log lines stay attributable once they are aggregated.
func InitLogger(cfg *config.Config) {
	var logConfig zap.Config

	if cfg.Server.Env == "production" {
		// Production mode: structured JSON logs
		logConfig = zap.NewProductionConfig()
	} else {
		// Development mode: colorful, human-readable logs
		logConfig = zap.NewDevelopmentConfig()
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	logConfig.Level.SetLevel(level)

	built, err := logConfig.Build()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log = built.With(zap.String("service", "cms-service"))

	log.Info("Logger initialized", zap.String("level", level.String()))
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if log == nil {
		// Fallback if not initialized
		fallback, err := zap.NewProduction()
		if err != nil {
			panic("Failed to create fallback logger: " + err.Error())
		}
		log = fallback.With(zap.String("service", "cms-service"))
	}
	return log
}

// Middleware returns an Echo middleware that stores a request-scoped logger
// in the context and logs each request on completion. Site-scoped routes get
// the site path parameter as a field, which is what most log queries in a
// multi-site deployment filter on.
func Middleware(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// RequestIDMiddleware runs first and sets the response header
			requestID := c.Response().Header().Get(RequestIDKey)
			if requestID == "" {
				requestID = c.Request().Header.Get(RequestIDKey)
			}

			ctxLogger := logger.With(zap.String("request_id", requestID))
			c.Set("logger", ctxLogger)

			err := next(c)

			fields := []zapcore.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			}
			if siteID := c.Param("site_id"); siteID != "" {
				fields = append(fields, zap.String("site_id", siteID))
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				ctxLogger.Error("Request failed", fields...)
			} else {
				ctxLogger.Info("Request completed", fields...)
			}

			return err
		}
	}
}
