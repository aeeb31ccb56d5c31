package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms-service/internal/model"
	"cms-service/prometheus"
)

// CreateCompany adds a hiring company to a site's job board
func (h *Handler) CreateCompany(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	var company model.Company
	if err := c.Bind(&company); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := h.svc.Job.CreateCompany(c.Request().Context(), a, siteID, &company); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("company", "create")
	h.invalidatePublic(c, siteID, "jobs")
	return c.JSON(http.StatusCreated, company)
}

// ListCompanies returns a site's hiring companies
func (h *Handler) ListCompanies(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	companies, err := h.svc.Job.ListCompanies(c.Request().Context(), a, siteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, companies)
}

// UpdateCompany modifies a hiring company
func (h *Handler) UpdateCompany(c echo.Context) error {
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

	var update model.Company
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	company, err := h.svc.Job.UpdateCompany(c.Request().Context(), a, siteID, id, &update)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("company", "update")
	h.invalidatePublic(c, siteID, "jobs")
	return c.JSON(http.StatusOK, company)
}

// DeleteCompany removes a hiring company and its listings
func (h *Handler) DeleteCompany(c echo.Context) error {
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

	if err := h.svc.Job.DeleteCompany(c.Request().Context(), a, siteID, id); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("company", "delete")
	h.invalidatePublic(c, siteID, "jobs")
	return c.JSON(http.StatusOK, echo.Map{"message": "company deleted"})
}

// CreateJobListing posts a job on a site's board
func (h *Handler) CreateJobListing(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	var job model.JobListing
	if err := c.Bind(&job); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := h.svc.Job.CreateListing(c.Request().Context(), a, siteID, &job); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("job", "create")
	h.invalidatePublic(c, siteID, "jobs")
	return c.JSON(http.StatusCreated, job)
}

// GetJobListing returns one job listing
func (h *Handler) GetJobListing(c echo.Context) error {
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

	job, err := h.svc.Job.GetListing(c.Request().Context(), a, siteID, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, job)
}

// ListJobListings returns every listing on a site's board, drafts included
func (h *Handler) ListJobListings(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	jobs, err := h.svc.Job.ListListings(c.Request().Context(), a, siteID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// UpdateJobListing modifies a job listing
func (h *Handler) UpdateJobListing(c echo.Context) error {
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

	var update model.JobListing
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	job, err := h.svc.Job.UpdateListing(c.Request().Context(), a, siteID, id, &update)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("job", "update")
	h.invalidatePublic(c, siteID, "jobs")
	return c.JSON(http.StatusOK, job)
}

// DeleteJobListing removes a job listing
func (h *Handler) DeleteJobListing(c echo.Context) error {
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

	if err := h.svc.Job.DeleteListing(c.Request().Context(), a, siteID, id); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation("job", "delete")
	h.invalidatePublic(c, siteID, "jobs")
	return c.JSON(http.StatusOK, echo.Map{"message": "job listing deleted"})
}
