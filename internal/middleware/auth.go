package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-service/internal/service"
	"cms-service/pkg/jwtutil"
	"cms-service/pkg/logger"
	"cms-service/prometheus"
)

// AuthMiddleware validates the JWT token from the Authorization header and
// enforces the absolute session window.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// The token itself may still be within its 24h lifetime while the
		// 48h session window has already closed.
		if err := jwtutil.CheckSession(claims, time.Now()); err != nil || claims.IsExpired {
			log.Warn("Session window elapsed", zap.Uint("user_id", claims.UserID))
			prometheus.RecordAuthError("session_expired")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired, please sign in again"})
		}

		c.Set("claims", claims)
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Set("actor", service.Actor{UserID: claims.UserID, Role: claims.Role})
		if claims.CurrentSiteID != nil {
			c.Set("current_site_id", *claims.CurrentSiteID)
		}

		return next(c)
	}
}

// ActorFromContext extracts the authenticated actor set by AuthMiddleware
func ActorFromContext(c echo.Context) (service.Actor, bool) {
	actor, ok := c.Get("actor").(service.Actor)
	return actor, ok
}

// ClaimsFromContext extracts the validated token claims set by AuthMiddleware
func ClaimsFromContext(c echo.Context) (*jwtutil.UserClaims, bool) {
	claims, ok := c.Get("claims").(*jwtutil.UserClaims)
	return claims, ok
}
