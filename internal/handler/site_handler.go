package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-service/internal/model"
	"cms-service/pkg/logger"
	"cms-service/prometheus"
)

// CreateSite registers a new site
func (h *Handler) CreateSite(c echo.Context) error {
	log := logger.FromContext(c)
	a, err := actor(c)
	if err != nil {
		return err
	}

	var site model.Site
	if err := c.Bind(&site); err != nil {
		log.Error("Failed to parse site request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := h.svc.Site.Create(c.Request().Context(), a, &site); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordSiteOperation("create")
	return c.JSON(http.StatusCreated, site)
}

// GetSite returns one site the caller may access
func (h *Handler) GetSite(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	site, err := h.svc.Site.Get(c.Request().Context(), a, siteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, site)
}

// ListSites returns the caller's site directory. SUPERADMIN sees everything;
// everyone else sees only their memberships.
func (h *Handler) ListSites(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}

	sites, err := h.svc.Site.List(c.Request().Context(), a)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, sites)
}

// UpdateSite modifies site settings
func (h *Handler) UpdateSite(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	var update model.Site
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	site, err := h.svc.Site.Update(c.Request().Context(), a, siteID, &update)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordSiteOperation("update")
	h.invalidatePublic(c, siteID, "site")
	return c.JSON(http.StatusOK, site)
}

// DeleteSite removes a site and everything it owns
func (h *Handler) DeleteSite(c echo.Context) error {
	log := logger.FromContext(c)
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	if err := h.svc.Site.Delete(c.Request().Context(), a, siteID); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordSiteOperation("delete")
	h.invalidatePublic(c, siteID, "site")
	log.Info("Site deleted", zap.Uint("site_id", siteID))
	return c.JSON(http.StatusOK, echo.Map{"message": "site deleted"})
}

// AddSiteMember grants a user membership of a site
func (h *Handler) AddSiteMember(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	if err := h.svc.Site.AddMember(c.Request().Context(), a, siteID, req.UserID); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordSiteOperation("add_member")
	return c.JSON(http.StatusCreated, echo.Map{"message": "member added"})
}

// RemoveSiteMember revokes a user's membership
func (h *Handler) RemoveSiteMember(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.svc.Site.RemoveMember(c.Request().Context(), a, siteID, userID); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordSiteOperation("remove_member")
	return c.JSON(http.StatusOK, echo.Map{"message": "member removed"})
}

// ListSiteMembers returns a site's membership set
func (h *Handler) ListSiteMembers(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	members, err := h.svc.Site.ListMembers(c.Request().Context(), a, siteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}
