package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-service/internal/model"
	"cms-service/pkg/logger"
	"cms-service/prometheus"
)

// ListSiteFeatures returns a site's feature configuration
func (h *Handler) ListSiteFeatures(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	features, err := h.svc.Feature.List(c.Request().Context(), a, siteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, features)
}

// CreateSiteFeature configures a feature for a site
func (h *Handler) CreateSiteFeature(c echo.Context) error {
	log := logger.FromContext(c)
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	var feature model.SiteFeature
	if err := c.Bind(&feature); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := h.svc.Feature.Create(c.Request().Context(), a, siteID, &feature); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordFeatureOperation("create")
	h.invalidatePublic(c, siteID, "site", "sponsors", "jobs")
	log.Info("Feature configured",
		zap.Uint("site_id", siteID),
		zap.String("feature", feature.Feature),
		zap.Bool("enabled", feature.IsEnabled))
	return c.JSON(http.StatusCreated, feature)
}

// UpdateSiteFeature toggles or reconfigures a feature
func (h *Handler) UpdateSiteFeature(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	featureID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var update model.SiteFeature
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	feature, err := h.svc.Feature.Update(c.Request().Context(), a, siteID, featureID, &update)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordFeatureOperation("update")
	h.invalidatePublic(c, siteID, "site", "sponsors", "jobs")
	return c.JSON(http.StatusOK, feature)
}

// DeleteSiteFeature removes a feature row, closing its gate
func (h *Handler) DeleteSiteFeature(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	featureID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Feature.Delete(c.Request().Context(), a, siteID, featureID); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordFeatureOperation("delete")
	h.invalidatePublic(c, siteID, "site", "sponsors", "jobs")
	return c.JSON(http.StatusOK, echo.Map{"message": "feature removed"})
}
