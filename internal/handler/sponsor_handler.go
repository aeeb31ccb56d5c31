package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms-service/internal/model"
	"cms-service/prometheus"
)

// CreateSponsor adds a sponsor entry to a site
func (h *Handler) CreateSponsor(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	var sponsor model.Sponsor
	if err := c.Bind(&sponsor); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := h.svc.Sponsor.Create(c.Request().Context(), a, siteID, &sponsor); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("sponsor", "create")
	h.invalidatePublic(c, siteID, "sponsors")
	return c.JSON(http.StatusCreated, sponsor)
}

// GetSponsor returns one sponsor
func (h *Handler) GetSponsor(c echo.Context) error {
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

	sponsor, err := h.svc.Sponsor.Get(c.Request().Context(), a, siteID, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, sponsor)
}

// ListSponsors returns a site's sponsors
func (h *Handler) ListSponsors(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	sponsors, err := h.svc.Sponsor.List(c.Request().Context(), a, siteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, sponsors)
}

// UpdateSponsor modifies a sponsor entry
func (h *Handler) UpdateSponsor(c echo.Context) error {
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

	var update model.Sponsor
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	sponsor, err := h.svc.Sponsor.Update(c.Request().Context(), a, siteID, id, &update)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("sponsor", "update")
	h.invalidatePublic(c, siteID, "sponsors")
	return c.JSON(http.StatusOK, sponsor)
}

// DeleteSponsor removes a sponsor entry
func (h *Handler) DeleteSponsor(c echo.Context) error {
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

	if err := h.svc.Sponsor.Delete(c.Request().Context(), a, siteID, id); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("sponsor", "delete")
	h.invalidatePublic(c, siteID, "sponsors")
	return c.JSON(http.StatusOK, echo.Map{"message": "sponsor deleted"})
}
