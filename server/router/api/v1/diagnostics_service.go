package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type recentError struct {
	Kind        string `json:"kind"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
	Recoverable bool   `json:"recoverable"`
}

type recentErrorsResponse struct {
	Message string         `json:"message"`
	Errors  []*recentError `json:"errors"`
}

// RecentErrors returns the bounded error history, most recent first.
// GET /api/v1/errors/recent
func (s *APIV1Service) RecentErrors(c echo.Context) error {
	entries := s.History.Recent()
	errs := make([]*recentError, 0, len(entries))
	for _, e := range entries {
		errs = append(errs, &recentError{
			Kind:        string(e.Kind),
			Severity:    string(e.Severity),
			Message:     e.Message,
			Timestamp:   e.Timestamp.Unix(),
			Recoverable: e.Recoverable,
		})
	}
	return c.JSON(http.StatusOK, &recentErrorsResponse{Message: "ok", Errors: errs})
}
