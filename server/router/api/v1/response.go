package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftdeck/craftdeck/internal/apperr"
)

// errorBody is the error half of the response envelope.
type errorBody struct {
	Kind        string   `json:"kind"`
	Code        int      `json:"code"`
	Timestamp   int64    `json:"timestamp"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type errorResponse struct {
	Message string     `json:"message"`
	Error   *errorBody `json:"error"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindAuthorization:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err in the response envelope. Errors coming out of the
// store are already classified and recorded; everything else passes through
// the classifier here without touching the history again.
func WriteError(c echo.Context, err error) error {
	ae := apperr.Classify(err, nil)
	status := statusFor(ae.Kind)
	// The friendly text keys off the classifier's own code, not the mapped
	// HTTP status: Network maps to 502 but should keep its network wording.
	return c.JSON(status, &errorResponse{
		Message: apperr.FriendlyMessage(ae.Kind, ae.Code),
		Error: &errorBody{
			Kind:        string(ae.Kind),
			Code:        status,
			Timestamp:   ae.Timestamp.Unix(),
			Suggestions: apperr.RecoverySuggestions(ae.Kind),
		},
	})
}
