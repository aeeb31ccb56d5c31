package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-service/internal/middleware"
	"cms-service/internal/service"
	"cms-service/pkg/cache"
	"cms-service/pkg/logger"
)

// Handler holds the HTTP handlers over the service layer
type Handler struct {
	svc   *service.Service
	cache *cache.Client
}

// NewHandler creates the handler set. cache may be nil.
func NewHandler(svc *service.Service, cache *cache.Client) *Handler {
	return &Handler{svc: svc, cache: cache}
}

// errResponded signals that a helper already wrote the error response.
// Returning it stops the handler; echo's error handler is a no-op once the
// response is committed, so no second body is written.
var errResponded = errors.New("response already written")

// actor extracts the authenticated actor or writes a 401
func actor(c echo.Context) (service.Actor, error) {
	a, ok := middleware.ActorFromContext(c)
	if !ok {
		if err := c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"}); err != nil {
			return service.Actor{}, err
		}
		return service.Actor{}, errResponded
	}
	return a, nil
}

// pathID parses a numeric path parameter
func pathID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		if err := c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + name}); err != nil {
			return 0, err
		}
		return 0, errResponded
	}
	return uint(id), nil
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Unknown errors are logged and reported as a bare 500.
func writeServiceError(c echo.Context, err error) error {
	var missing *service.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":         "missing required fields",
			"missingFields": missing.Labels,
		})
	case errors.Is(err, service.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	case errors.Is(err, service.ErrNotInvited):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "sign-in is by invitation only"})
	case errors.Is(err, service.ErrFeatureDisabled):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "feature not enabled for this site"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	case errors.Is(err, service.ErrSiteNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "site not found"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrInvalidState):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrStorageUnavailable):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "media storage unavailable"})
	default:
		logger.FromContext(c).Error("Unhandled service error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
