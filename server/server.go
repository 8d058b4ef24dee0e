package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/craftdeck/craftdeck/internal/apperr"
	"github.com/craftdeck/craftdeck/internal/profile"
	"github.com/craftdeck/craftdeck/server/middleware"
	apiv1 "github.com/craftdeck/craftdeck/server/router/api/v1"
	"github.com/craftdeck/craftdeck/store"
)

type Server struct {
	Secret  string
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store, history *apperr.History) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Secret:     profile.Secret,
		Profile:    profile,
		Store:      store,
		echoServer: e,
	}
	e.HTTPErrorHandler = s.errorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete},
	}))
	e.Use(middleware.RequestLogger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	rateLimiter := middleware.NewRateLimiter(profile.RateLimitPerSecond, profile.RateLimitBurst)
	apiGroup := e.Group("/api/v1",
		middleware.Identity(s.Secret),
		rateLimiter.Middleware(),
	)
	apiV1Service := apiv1.NewAPIV1Service(s.Secret, profile, store, history)
	apiV1Service.RegisterRoutes(apiGroup)

	return s, nil
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", slog.String("address", address), slog.String("mode", s.Profile.Mode))
	if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.Any("error", err))
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.Any("error", err))
	}
	slog.Info("server shutdown complete")
}

// errorHandler renders errors raised by middleware and unhandled panics in
// the same envelope the handlers use.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if httpErr, ok := err.(*echo.HTTPError); ok {
		message := fmt.Sprintf("%v", httpErr.Message)
		_ = c.JSON(httpErr.Code, map[string]any{
			"message": message,
			"error": map[string]any{
				"kind": string(kindForStatus(httpErr.Code)),
				"code": httpErr.Code,
			},
		})
		return
	}
	_ = apiv1.WriteError(c, err)
}

func kindForStatus(code int) apperr.Kind {
	switch code {
	case http.StatusBadRequest:
		return apperr.KindValidation
	case http.StatusUnauthorized:
		return apperr.KindAuthentication
	case http.StatusForbidden:
		return apperr.KindAuthorization
	case http.StatusNotFound:
		return apperr.KindNotFound
	default:
		if code >= http.StatusInternalServerError {
			return apperr.KindServer
		}
		return apperr.KindUnknown
	}
}
