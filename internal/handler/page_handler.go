package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms-service/internal/model"
	"cms-service/prometheus"
)

// Pages and blog posts share handlers; the route decides the kind and with it
// which feature gates the request.

func resourceForKind(kind string) string {
	if kind == model.PageKindPost {
		return "post"
	}
	return "page"
}

func (h *Handler) createPage(c echo.Context, kind string) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	var page model.Page
	if err := c.Bind(&page); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	page.Kind = kind

	if err := h.svc.Page.Create(c.Request().Context(), a, siteID, &page); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation(resourceForKind(kind), "create")
	return c.JSON(http.StatusCreated, page)
}

func (h *Handler) getPage(c echo.Context, kind string) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	pageID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	page, err := h.svc.Page.Get(c.Request().Context(), a, siteID, pageID, kind)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) listPages(c echo.Context, kind string) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}

	pages, err := h.svc.Page.List(c.Request().Context(), a, siteID, kind)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, pages)
}

func (h *Handler) updatePage(c echo.Context, kind string) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	pageID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var update model.Page
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	page, err := h.svc.Page.Update(c.Request().Context(), a, siteID, pageID, kind, &update)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation(resourceForKind(kind), "update")
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) deletePage(c echo.Context, kind string) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	siteID, err := pathID(c, "site_id")
	if err != nil {
		return err
	}
	pageID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Page.Delete(c.Request().Context(), a, siteID, pageID, kind); err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordContentOperation(resourceForKind(kind), "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": resourceForKind(kind) + " deleted"})
}

// Page routes

func (h *Handler) CreatePage(c echo.Context) error { return h.createPage(c, model.PageKindPage) }
func (h *Handler) GetPage(c echo.Context) error    { return h.getPage(c, model.PageKindPage) }
func (h *Handler) ListPages(c echo.Context) error  { return h.listPages(c, model.PageKindPage) }
func (h *Handler) UpdatePage(c echo.Context) error { return h.updatePage(c, model.PageKindPage) }
func (h *Handler) DeletePage(c echo.Context) error { return h.deletePage(c, model.PageKindPage) }

// Blog post routes

func (h *Handler) CreatePost(c echo.Context) error { return h.createPage(c, model.PageKindPost) }
func (h *Handler) GetPost(c echo.Context) error    { return h.getPage(c, model.PageKindPost) }
func (h *Handler) ListPosts(c echo.Context) error  { return h.listPages(c, model.PageKindPost) }
func (h *Handler) UpdatePost(c echo.Context) error { return h.updatePage(c, model.PageKindPost) }
func (h *Handler) DeletePost(c echo.Context) error { return h.deletePage(c, model.PageKindPost) }
