package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-service/pkg/logger"
	"cms-service/prometheus"
)

// UploadMedia accepts a multipart upload and stores it in object storage
func (h *Handler) UploadMedia(c echo.Context) error {
	log := logger.FromContext(c)
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable upload"})
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	file, err := h.svc.Media.Upload(c.Request().Context(), a, siteID, fileHeader.Filename, contentType, src, fileHeader.Size)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("media", "create")
	log.Info("Media uploaded",
		zap.Uint("site_id", siteID),
		zap.String("file", file.FileName),
		zap.Int64("size", file.SizeBytes))
	return c.JSON(http.StatusCreated, file)
}

// GetMedia returns one media file's metadata
func (h *Handler) GetMedia(c echo.Context) error {
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

	file, err := h.svc.Media.Get(c.Request().Context(), a, siteID, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, file)
}

// ListMedia returns a site's media library
func (h *Handler) ListMedia(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	files, err := h.svc.Media.List(c.Request().Context(), a, siteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, files)
}

// DeleteMedia removes a media file's metadata and best-effort deletes the
// stored object
func (h *Handler) DeleteMedia(c echo.Context) error {
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

	if err := h.svc.Media.Delete(c.Request().Context(), a, siteID, id); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("media", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "media deleted"})
}
