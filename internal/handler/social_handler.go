package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms-service/internal/model"
	"cms-service/prometheus"
)

// CreateChannel registers a social media channel for a site
func (h *Handler) CreateChannel(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	var channel model.SocialMediaChannel
	if err := c.Bind(&channel); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := h.svc.Social.CreateChannel(c.Request().Context(), a, siteID, &channel); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("channel", "create")
	return c.JSON(http.StatusCreated, channel)
}

// GetChannel returns one channel with its cached stats
func (h *Handler) GetChannel(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	channel, err := h.svc.Social.GetChannel(c.Request().Context(), a, siteID, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, channel)
}

// ListChannels returns a site's channels with cached stats
func (h *Handler) ListChannels(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	channels, err := h.svc.Social.ListChannels(c.Request().Context(), a, siteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, channels)
}

// UpdateChannel modifies a channel registration
func (h *Handler) UpdateChannel(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var update model.SocialMediaChannel
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	channel, err := h.svc.Social.UpdateChannel(c.Request().Context(), a, siteID, id, &update)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("channel", "update")
	return c.JSON(http.StatusOK, channel)
}

// DeleteChannel removes a channel and its cached stats
func (h *Handler) DeleteChannel(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Social.DeleteChannel(c.Request().Context(), a, siteID, id); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("channel", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "channel deleted"})
}
