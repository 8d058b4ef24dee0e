package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftdeck/craftdeck/internal/apperr"
	"github.com/craftdeck/craftdeck/server/middleware"
	"github.com/craftdeck/craftdeck/store"
)

type projectResponse struct {
	Message string             `json:"message"`
	Project *store.ProjectView `json:"project"`
}

type projectListResponse struct {
	Message  string           `json:"message"`
	Projects []*store.Project `json:"projects"`
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Manifest    string `json:"manifest"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Manifest    *string `json:"manifest"`
}

// GetProject returns the composite project view.
// GET /api/v1/projects/:id
func (s *APIV1Service) GetProject(c echo.Context) error {
	ctx := c.Request().Context()
	view, err := s.Store.GetProject(ctx, c.Param("id"))
	if err != nil {
		return WriteError(c, err)
	}
	if view.OwnerID != middleware.OwnerID(c) {
		return WriteError(c, apperr.Forbidden())
	}
	return c.JSON(http.StatusOK, &projectResponse{Message: "ok", Project: view})
}

// ListProjects lists the caller's projects.
// GET /api/v1/projects?ownerId=
func (s *APIV1Service) ListProjects(c echo.Context) error {
	ctx := c.Request().Context()
	callerID := middleware.OwnerID(c)

	ownerID := c.QueryParam("ownerId")
	if ownerID == "" {
		ownerID = callerID
	}
	if ownerID != callerID {
		return WriteError(c, apperr.Forbidden())
	}

	projects, err := s.Store.ListProjects(ctx, ownerID)
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusOK, &projectListResponse{Message: "ok", Projects: projects})
}

// CreateProject creates a project owned by the caller.
// POST /api/v1/projects
func (s *APIV1Service) CreateProject(c echo.Context) error {
	ctx := c.Request().Context()

	req := &createProjectRequest{}
	if err := c.Bind(req); err != nil {
		return WriteError(c, apperr.Validation("malformed request body"))
	}

	project, err := s.Store.CreateProject(ctx, middleware.OwnerID(c), &store.Project{
		Name:        req.Name,
		Description: req.Description,
		Manifest:    req.Manifest,
	})
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusCreated, &struct {
		Message string         `json:"message"`
		Project *store.Project `json:"project"`
	}{Message: "project created", Project: project})
}

// UpdateProject applies a partial edit to a project.
// PATCH /api/v1/projects/:id
func (s *APIV1Service) UpdateProject(c echo.Context) error {
	ctx := c.Request().Context()

	req := &updateProjectRequest{}
	if err := c.Bind(req); err != nil {
		return WriteError(c, apperr.Validation("malformed request body"))
	}

	project, err := s.Store.UpdateProject(ctx, middleware.OwnerID(c), &store.UpdateProject{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Manifest:    req.Manifest,
	})
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusOK, &struct {
		Message string         `json:"message"`
		Project *store.Project `json:"project"`
	}{Message: "project updated", Project: project})
}

// DeleteProject archives a project and removes its dependents.
// DELETE /api/v1/projects/:id
func (s *APIV1Service) DeleteProject(c echo.Context) error {
	ctx := c.Request().Context()
	if err := s.Store.DeleteProject(ctx, middleware.OwnerID(c), c.Param("id")); err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusOK, &struct {
		Message string `json:"message"`
	}{Message: "project deleted"})
}

// UpsertSetting writes one project setting.
// PUT /api/v1/projects/:id/settings/:key
func (s *APIV1Service) UpsertSetting(c echo.Context) error {
	ctx := c.Request().Context()

	req := &struct {
		Value string `json:"value"`
	}{}
	if err := c.Bind(req); err != nil {
		return WriteError(c, apperr.Validation("malformed request body"))
	}

	setting, err := s.Store.UpsertSetting(ctx, middleware.OwnerID(c), &store.Setting{
		ProjectID: c.Param("id"),
		Key:       c.Param("key"),
		Value:     req.Value,
	})
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusOK, &struct {
		Message string         `json:"message"`
		Setting *store.Setting `json:"setting"`
	}{Message: "setting saved", Setting: setting})
}
