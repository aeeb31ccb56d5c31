package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-service/pkg/logger"
	"cms-service/prometheus"
)

const publicCacheTTL = 5 * time.Minute

// publicCacheKey is shared by the public read path and the invalidation run
// on admin writes.
func publicCacheKey(endpoint, siteID string) string {
	return fmt.Sprintf("public:%s:%s", endpoint, siteID)
}

// invalidatePublic drops cached public responses for a site after an admin
// write, so the change shows up before the cache TTL lapses.
func (h *Handler) invalidatePublic(c echo.Context, siteID uint, endpoints ...string) {
	if h.cache == nil {
		return
	}
	id := strconv.FormatUint(uint64(siteID), 10)
	keys := make([]string, len(endpoints))
	for i, ep := range endpoints {
		keys[i] = publicCacheKey(ep, id)
	}
	h.cache.Invalidate(c.Request().Context(), keys...)
}

// servePublicJSON writes a public read response with browser caching headers,
// storing successful bodies in redis when a client is configured. Only 200
// responses are cached; errors always go through uncached.
func (h *Handler) servePublicJSON(c echo.Context, endpoint string, load func() (interface{}, error)) error {
	prometheus.PublicReadCounter.WithLabelValues(endpoint).Inc()
	key := publicCacheKey(endpoint, c.Param("site_id"))
	ctx := c.Request().Context()

	if h.cache != nil {
		if body, ok := h.cache.Get(ctx, key); ok {
			prometheus.PublicCacheCounter.WithLabelValues("hit").Inc()
			c.Response().Header().Set("Cache-Control", "public, max-age=300")
			return c.JSONBlob(http.StatusOK, []byte(body))
		}
		prometheus.PublicCacheCounter.WithLabelValues("miss").Inc()
	}

	payload, err := load()
	if err != nil {
		return writeServiceError(c, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.FromContext(c).Error("Failed to encode public response", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	if h.cache != nil {
		h.cache.Set(ctx, key, string(body), publicCacheTTL)
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=300")
	return c.JSONBlob(http.StatusOK, body)
}

// PublicGetSite returns the public directory projection of a site
func (h *Handler) PublicGetSite(c echo.Context) error {
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	return h.servePublicJSON(c, "site", func() (interface{}, error) {
		return h.svc.Public.Site(c.Request().Context(), siteID)
	})
}

// PublicListSponsors returns a site's active sponsors
func (h *Handler) PublicListSponsors(c echo.Context) error {
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	return h.servePublicJSON(c, "sponsors", func() (interface{}, error) {
		return h.svc.Public.Sponsors(c.Request().Context(), siteID)
	})
}

// PublicListJobs returns a site's publicly visible job listings
func (h *Handler) PublicListJobs(c echo.Context) error {
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	return h.servePublicJSON(c, "jobs", func() (interface{}, error) {
		return h.svc.Public.Jobs(c.Request().Context(), siteID)
	})
}

// PublicListSocial returns a site's channels with lazily refreshed stats.
// Stats are refreshed inside the service, so this endpoint bypasses the
// response cache to avoid serving doubly stale values.
func (h *Handler) PublicListSocial(c echo.Context) error {
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	prometheus.PublicReadCounter.WithLabelValues("social").Inc()

	channels, err := h.svc.Social.ChannelsWithStats(c.Request().Context(), siteID)
	if err != nil {
		return writeServiceError(c, err)
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=300")
	return c.JSON(http.StatusOK, channels)
}

// PublicSubmitContact is the unauthenticated contact form intake
func (h *Handler) PublicSubmitContact(c echo.Context) error {
	log := logger.FromContext(c)
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	prometheus.PublicReadCounter.WithLabelValues("contact").Inc()

	var values map[string]string
	if err := c.Bind(&values); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	submission, err := h.svc.Contact.Submit(c.Request().Context(), siteID, values, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return writeServiceError(c, err)
	}

	log.Info("Contact submission received", zap.Uint("site_id", siteID), zap.Uint("submission_id", submission.ID))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "submission received",
		"id":      submission.ID,
	})
}
