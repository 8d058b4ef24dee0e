package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftdeck/craftdeck/internal/apperr"
	"github.com/craftdeck/craftdeck/server/middleware"
	"github.com/craftdeck/craftdeck/store"
)

type conversationResponse struct {
	Message      string                  `json:"message"`
	Conversation *store.ConversationView `json:"conversation"`
}

type conversationListResponse struct {
	Message       string                `json:"message"`
	Conversations []*store.Conversation `json:"conversations"`
}

type createConversationRequest struct {
	ProjectID string `json:"projectId"`
	Title     string `json:"title"`
}

type appendMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GetConversation returns the composite conversation view.
// GET /api/v1/conversations/:id
func (s *APIV1Service) GetConversation(c echo.Context) error {
	ctx := c.Request().Context()
	view, err := s.Store.GetConversation(ctx, c.Param("id"))
	if err != nil {
		return WriteError(c, err)
	}
	if view.OwnerID != middleware.OwnerID(c) {
		return WriteError(c, apperr.Forbidden())
	}
	return c.JSON(http.StatusOK, &conversationResponse{Message: "ok", Conversation: view})
}

// ListConversations lists conversations under a project.
// GET /api/v1/conversations?projectId=
func (s *APIV1Service) ListConversations(c echo.Context) error {
	ctx := c.Request().Context()

	projectID := c.QueryParam("projectId")
	if projectID == "" {
		return WriteError(c, apperr.Validation("projectId is required"))
	}
	if _, err := s.Store.AuthorizeProject(ctx, middleware.OwnerID(c), projectID); err != nil {
		return WriteError(c, err)
	}

	conversations, err := s.Store.ListConversations(ctx, projectID)
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusOK, &conversationListResponse{Message: "ok", Conversations: conversations})
}

// CreateConversation starts a conversation under a project.
// POST /api/v1/conversations
func (s *APIV1Service) CreateConversation(c echo.Context) error {
	ctx := c.Request().Context()

	req := &createConversationRequest{}
	if err := c.Bind(req); err != nil {
		return WriteError(c, apperr.Validation("malformed request body"))
	}

	conversation, err := s.Store.CreateConversation(ctx, middleware.OwnerID(c), req.ProjectID, req.Title)
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusCreated, &struct {
		Message      string              `json:"message"`
		Conversation *store.Conversation `json:"conversation"`
	}{Message: "conversation created", Conversation: conversation})
}

// DeleteConversation removes a conversation and its messages.
// DELETE /api/v1/conversations/:id
func (s *APIV1Service) DeleteConversation(c echo.Context) error {
	ctx := c.Request().Context()
	if err := s.Store.DeleteConversation(ctx, middleware.OwnerID(c), c.Param("id")); err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusOK, &struct {
		Message string `json:"message"`
	}{Message: "conversation deleted"})
}

// AppendMessage appends a message to a conversation.
// POST /api/v1/conversations/:id/messages
func (s *APIV1Service) AppendMessage(c echo.Context) error {
	ctx := c.Request().Context()

	req := &appendMessageRequest{}
	if err := c.Bind(req); err != nil {
		return WriteError(c, apperr.Validation("malformed request body"))
	}

	message, err := s.Store.AppendMessage(ctx, middleware.OwnerID(c), c.Param("id"), store.MessageRole(req.Role), req.Content)
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(http.StatusCreated, &struct {
		Message string         `json:"message"`
		Entity  *store.Message `json:"entity"`
	}{Message: "message appended", Entity: message})
}
