package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/craftdeck/craftdeck/internal/apperr"
	"github.com/craftdeck/craftdeck/internal/profile"
	"github.com/craftdeck/craftdeck/store"
)

// APIV1Service exposes the store over the /api/v1 REST surface.
type APIV1Service struct {
	Secret  string
	Profile *profile.Profile
	Store   *store.Store
	History *apperr.History
}

func NewAPIV1Service(secret string, profile *profile.Profile, store *store.Store, history *apperr.History) *APIV1Service {
	return &APIV1Service{
		Secret:  secret,
		Profile: profile,
		Store:   store,
		History: history,
	}
}

// RegisterRoutes binds all v1 handlers onto the given group. The group is
// expected to already carry the identity middleware.
func (s *APIV1Service) RegisterRoutes(g *echo.Group) {
	g.GET("/projects", s.ListProjects)
	g.POST("/projects", s.CreateProject)
	g.GET("/projects/:id", s.GetProject)
	g.PATCH("/projects/:id", s.UpdateProject)
	g.DELETE("/projects/:id", s.DeleteProject)

	g.POST("/projects/:id/files", s.CreateFile)
	g.PATCH("/files/:id", s.UpdateFile)
	g.DELETE("/files/:id", s.DeleteFile)
	g.PUT("/projects/:id/settings/:key", s.UpsertSetting)

	g.GET("/conversations", s.ListConversations)
	g.POST("/conversations", s.CreateConversation)
	g.GET("/conversations/:id", s.GetConversation)
	g.DELETE("/conversations/:id", s.DeleteConversation)
	g.POST("/conversations/:id/messages", s.AppendMessage)

	g.GET("/errors/recent", s.RecentErrors)
}
