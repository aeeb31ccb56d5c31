package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms-service/internal/model"
	"cms-service/prometheus"
)

// GetContactForm returns a site's contact form with its ordered fields
func (h *Handler) GetContactForm(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	form, err := h.svc.Contact.GetForm(c.Request().Context(), a, siteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, form)
}

// UpdateContactForm edits the form's title, description, or field set
func (h *Handler) UpdateContactForm(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	var update model.ContactForm
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	form, err := h.svc.Contact.UpdateForm(c.Request().Context(), a, siteID, &update)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("contact_form", "update")
	return c.JSON(http.StatusOK, form)
}

// ListSubmissions returns a site's contact submissions. Archived submissions
// are hidden unless ?archived=true.
func (h *Handler) ListSubmissions(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	includeArchived := c.QueryParam("archived") == "true"
	submissions, err := h.svc.Contact.ListSubmissions(c.Request().Context(), a, siteID, includeArchived)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, submissions)
}

// GetSubmission returns one submission snapshot
func (h *Handler) GetSubmission(c echo.Context) error {
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

	submission, err := h.svc.Contact.GetSubmission(c.Request().Context(), a, siteID, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, submission)
}

// UpdateSubmission flips a submission's read or archived flags. The snapshot
// itself is immutable.
func (h *Handler) UpdateSubmission(c echo.Context) error {
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

	var req struct {
		IsRead     *bool `json:"is_read"`
		IsArchived *bool `json:"is_archived"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := h.svc.Contact.UpdateSubmissionFlags(c.Request().Context(), a, siteID, id, req.IsRead, req.IsArchived); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("submission", "update")
	return c.JSON(http.StatusOK, echo.Map{"message": "submission updated"})
}

// DeleteSubmission removes a submission and its snapshot data
func (h *Handler) DeleteSubmission(c echo.Context) error {
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

	if err := h.svc.Contact.DeleteSubmission(c.Request().Context(), a, siteID, id); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("submission", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "submission deleted"})
}
