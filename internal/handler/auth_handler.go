package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-service/pkg/jwtutil"
	"cms-service/pkg/logger"
	"cms-service/prometheus"
)

// Login exchanges an OAuth provider assertion for a session token. Admission
// is invite-only: an unknown email with no live invite is denied.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Assertion string `json:"assertion"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Assertion == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "assertion is required"})
	}

	user, err := h.svc.Auth.SignIn(c.Request().Context(), req.Assertion)
	if err != nil {
		prometheus.LoginCounter.WithLabelValues("failed").Inc()
		return writeServiceError(c, err)
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email, user.Role, user.IsActive, user.CurrentSiteID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	prometheus.LoginCounter.WithLabelValues("success").Inc()
	log.Info("User logged in", zap.String("email", user.Email), zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// Refresh re-signs a valid token with a fresh 24h lifetime. The first
// authentication time is carried over; past the 48h window the new token is
// marked expired instead of being withheld, and the request gate rejects it.
func (h *Handler) Refresh(c echo.Context) error {
	log := logger.FromContext(c)

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		prometheus.RecordAuthError("invalid_auth_format")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
	}

	claims, err := jwtutil.ValidateToken(parts[1])
	if err != nil {
		log.Error("Refresh with invalid token", zap.Error(err))
		prometheus.RecordAuthError("invalid_token")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
	}

	token, err := jwtutil.RefreshToken(claims)
	if err != nil {
		log.Error("Failed to refresh token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}

	user, err := h.svc.Auth.GetUser(c.Request().Context(), a.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
