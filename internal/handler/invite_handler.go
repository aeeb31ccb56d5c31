package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-service/pkg/logger"
	"cms-service/prometheus"
)

// CreateInvite issues an invite for an email address
func (h *Handler) CreateInvite(c echo.Context) error {
	log := logger.FromContext(c)
	a, err := actor(c)
	if err != nil {
		return err
	}

	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse invite request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	invite, err := h.svc.Invite.Create(c.Request().Context(), a, req.Email, req.Role)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordInviteOperation("create")
	log.Info("Invite issued", zap.String("email", invite.Email), zap.String("role", invite.Role))
	return c.JSON(http.StatusCreated, invite)
}

// ListInvites returns the full invite ledger
func (h *Handler) ListInvites(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}

	invites, err := h.svc.Invite.List(c.Request().Context(), a)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, invites)
}

// UpdateInvite changes the role of a pending invite
func (h *Handler) UpdateInvite(c echo.Context) error {
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

	invite, err := h.svc.Invite.UpdateRole(c.Request().Context(), a, id, req.Role)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordInviteOperation("update")
	return c.JSON(http.StatusOK, invite)
}

// DeleteInvite revokes a pending invite
func (h *Handler) DeleteInvite(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Invite.Delete(c.Request().Context(), a, id); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordInviteOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "invite deleted"})
}
