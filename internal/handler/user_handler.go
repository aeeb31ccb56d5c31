package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-service/internal/middleware"
	"cms-service/pkg/jwtutil"
	"cms-service/pkg/logger"
)

// ListUsers returns the user directory
func (h *Handler) ListUsers(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}

	users, err := h.svc.User.List(c.Request().Context(), a)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns one user
func (h *Handler) GetUser(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.svc.User.Get(c.Request().Context(), a, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUserRole changes a user's global role
func (h *Handler) UpdateUserRole(c echo.Context) error {
	log := logger.FromContext(c)
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := h.svc.User.UpdateRole(c.Request().Context(), a, id, req.Role)
	if err != nil {
		return writeServiceError(c, err)
	}

	log.Info("User role changed", zap.Uint("user_id", id), zap.String("role", req.Role))
	return c.JSON(http.StatusOK, user)
}

// SelectSite stores the caller's current site and returns a re-signed token
// carrying the new pointer. The pointer is convenience state for clients;
// access control never reads it.
func (h *Handler) SelectSite(c echo.Context) error {
	log := logger.FromContext(c)
	a, err := actor(c)
	if err != nil {
		return err
	}

	var req struct {
		SiteID *uint `json:"site_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := h.svc.User.SetCurrentSite(c.Request().Context(), a, req.SiteID)
	if err != nil {
		return writeServiceError(c, err)
	}

	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	token, err := jwtutil.TokenWithSite(claims, user.CurrentSiteID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}
