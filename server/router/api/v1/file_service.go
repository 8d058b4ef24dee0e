package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftdeck/craftdeck/internal/apperr"
	"github.com/craftdeck/craftdeck/server/middleware"
	"github.com/craftdeck/craftdeck/store"
)

type fileResponse struct {
	Message string      `json:"message"`
	File    *store.File `json:"file"`
}

type createFileRequest struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	FileType string `json:"fileType"`
	Content  string `json:"content"`
}

type updateFileRequest struct {
	Name     *string `json:"name"`
	Path     *string `json:"path"`
	FileType *string `json:"fileType"`
	Content  *string `json:"content"`
}

// CreateFile adds a file to a project.
// POST /api/v1/projects/:id/files
func (s *APIV1Service) CreateFile(c echo.Context) error {
	ctx := c.Request().Context()

	req := &createFileRequest{}
	if err := c.Bind(req); err != nil {
		return WriteError(c, apperr.Validation("malformed request body"))
	}

	file, err := s.Store.CreateFile(ctx, middleware.OwnerID(c), &store.File{
		ProjectID: c.Param("id"),
		Name:      req.Name,
		Path:      req.Path,
		FileType:  store.FileType(req.FileType),
		Content:   req.Content,
	})
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusCreated, &fileResponse{Message: "file created", File: file})
}

// UpdateFile applies a partial edit to a file.
// PATCH /api/v1/files/:id
func (s *APIV1Service) UpdateFile(c echo.Context) error {
	ctx := c.Request().Context()

	req := &updateFileRequest{}
	if err := c.Bind(req); err != nil {
		return WriteError(c, apperr.Validation("malformed request body"))
	}

	update := &store.UpdateFile{
		ID:      c.Param("id"),
		Name:    req.Name,
		Path:    req.Path,
		Content: req.Content,
	}
	if req.FileType != nil {
		fileType := store.FileType(*req.FileType)
		update.FileType = &fileType
	}

	file, err := s.Store.UpdateFile(ctx, middleware.OwnerID(c), update)
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusOK, &fileResponse{Message: "file updated", File: file})
}

// DeleteFile removes a file.
// DELETE /api/v1/files/:id
func (s *APIV1Service) DeleteFile(c echo.Context) error {
	ctx := c.Request().Context()
	if err := s.Store.DeleteFile(ctx, middleware.OwnerID(c), c.Param("id")); err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusOK, &struct {
		Message string `json:"message"`
	}{Message: "file deleted"})
}
