package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftdeck/craftdeck/internal/apperr"
	"github.com/craftdeck/craftdeck/internal/profile"
	"github.com/craftdeck/craftdeck/server/middleware"
	"github.com/craftdeck/craftdeck/store"
)

const testOwnerID = "owner-1"

func newTestServer(t *testing.T) (*echo.Echo, *fakeDriver, *store.Store) {
	t.Helper()

	driver := &fakeDriver{}
	p := &profile.Profile{
		Mode:          "dev",
		Driver:        "sqlite",
		CacheTTL:      time.Minute,
		CacheMaxItems: 100,
	}
	history := apperr.NewHistory(0)
	st := store.New(driver, p, history)
	t.Cleanup(func() { _ = st.Close() })

	e := echo.New()
	service := NewAPIV1Service("test-secret", p, st, history)
	// Stand-in for the identity middleware: every request runs as testOwnerID.
	g := e.Group("/api/v1", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.OwnerIDContextKey, testOwnerID)
			return next(c)
		}
	})
	service.RegisterRoutes(g)
	return e, driver, st
}

func perform(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func seedProject(d *fakeDriver, ownerID string) *store.Project {
	now := time.Now().Unix()
	project := &store.Project{
		ID:        uuid.NewString(),
		Name:      "portfolio",
		OwnerID:   ownerID,
		Manifest:  "{}",
		RowStatus: store.Normal,
		CreatedTs: now,
		UpdatedTs: now,
	}
	d.projects = append(d.projects, project)
	return project
}

func TestGetProject(t *testing.T) {
	e, driver, _ := newTestServer(t)
	project := seedProject(driver, testOwnerID)

	rec := perform(e, http.MethodGet, "/api/v1/projects/"+project.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "ok", body["message"])
	view := body["project"].(map[string]any)
	assert.Equal(t, project.ID, view["id"])
	assert.NotNil(t, view["files"])
	assert.NotNil(t, view["conversations"])
}

func TestGetProjectInvalidID(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := perform(e, http.MethodGet, "/api/v1/projects/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, string(apperr.KindValidation), errBody["kind"])
	assert.EqualValues(t, http.StatusBadRequest, errBody["code"])
}

func TestGetProjectNotFound(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := perform(e, http.MethodGet, "/api/v1/projects/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decode(t, rec)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, string(apperr.KindNotFound), errBody["kind"])
	assert.NotEmpty(t, errBody["timestamp"])
}

func TestGetProjectOwnedByOther(t *testing.T) {
	e, driver, _ := newTestServer(t)
	project := seedProject(driver, "someone-else")

	rec := perform(e, http.MethodGet, "/api/v1/projects/"+project.ID, "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decode(t, rec)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, string(apperr.KindAuthorization), errBody["kind"])
}

func TestListProjectsScopedToCaller(t *testing.T) {
	e, driver, _ := newTestServer(t)
	seedProject(driver, testOwnerID)
	seedProject(driver, "someone-else")

	rec := perform(e, http.MethodGet, "/api/v1/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["projects"], 1)

	rec = perform(e, http.MethodGet, "/api/v1/projects?ownerId=someone-else", "")
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateProject(t *testing.T) {
	e, driver, _ := newTestServer(t)

	rec := perform(e, http.MethodPost, "/api/v1/projects", `{"name":"landing page"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode(t, rec)
	project := body["project"].(map[string]any)
	assert.Equal(t, "landing page", project["name"])
	assert.Equal(t, testOwnerID, project["ownerId"])
	require.Len(t, driver.projects, 1)
}

func TestCreateProjectMissingName(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := perform(e, http.MethodPost, "/api/v1/projects", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAndDeleteProject(t *testing.T) {
	e, driver, _ := newTestServer(t)
	project := seedProject(driver, testOwnerID)

	rec := perform(e, http.MethodPatch, "/api/v1/projects/"+project.ID, `{"description":"updated"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "updated", driver.projects[0].Description)

	rec = perform(e, http.MethodDelete, "/api/v1/projects/"+project.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, store.Archived, driver.projects[0].RowStatus)
}

func TestFileEndpoints(t *testing.T) {
	e, driver, _ := newTestServer(t)
	project := seedProject(driver, testOwnerID)

	rec := perform(e, http.MethodPost, "/api/v1/projects/"+project.ID+"/files",
		`{"name":"index.html","fileType":"html","content":"<html></html>"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, driver.files, 1)
	fileID := driver.files[0].ID

	rec = perform(e, http.MethodPatch, "/api/v1/files/"+fileID, `{"content":"<html>v2</html>"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>v2</html>", driver.files[0].Content)

	rec = perform(e, http.MethodDelete, "/api/v1/files/"+fileID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, driver.files)
}

func TestUpsertSetting(t *testing.T) {
	e, driver, _ := newTestServer(t)
	project := seedProject(driver, testOwnerID)

	rec := perform(e, http.MethodPut, "/api/v1/projects/"+project.ID+"/settings/theme", `{"value":"{\"dark\":true}"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, driver.settings, 1)
	assert.Equal(t, "theme", driver.settings[0].Key)
}

func TestConversationAndMessageFlow(t *testing.T) {
	e, driver, _ := newTestServer(t)
	project := seedProject(driver, testOwnerID)

	rec := perform(e, http.MethodPost, "/api/v1/conversations",
		`{"projectId":"`+project.ID+`","title":"hero section"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, driver.conversations, 1)
	conversationID := driver.conversations[0].ID

	rec = perform(e, http.MethodPost, "/api/v1/conversations/"+conversationID+"/messages",
		`{"role":"user","content":"make the hero blue"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, driver.messages, 1)

	rec = perform(e, http.MethodGet, "/api/v1/conversations/"+conversationID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	view := body["conversation"].(map[string]any)
	assert.Len(t, view["messages"], 1)
}

func TestDeleteConversation(t *testing.T) {
	e, driver, _ := newTestServer(t)
	project := seedProject(driver, testOwnerID)

	rec := perform(e, http.MethodPost, "/api/v1/conversations",
		`{"projectId":"`+project.ID+`","title":"hero section"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	conversationID := driver.conversations[0].ID

	rec = perform(e, http.MethodPost, "/api/v1/conversations/"+conversationID+"/messages",
		`{"role":"user","content":"make the hero blue"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = perform(e, http.MethodDelete, "/api/v1/conversations/"+conversationID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, driver.conversations)
	assert.Empty(t, driver.messages)

	rec = perform(e, http.MethodGet, "/api/v1/conversations/"+conversationID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAppendMessageInvalidRole(t *testing.T) {
	e, driver, _ := newTestServer(t)
	project := seedProject(driver, testOwnerID)
	rec := perform(e, http.MethodPost, "/api/v1/conversations",
		`{"projectId":"`+project.ID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	conversationID := driver.conversations[0].ID

	rec = perform(e, http.MethodPost, "/api/v1/conversations/"+conversationID+"/messages",
		`{"role":"robot","content":"hi"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListConversationsRequiresProjectID(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := perform(e, http.MethodGet, "/api/v1/conversations", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecentErrors(t *testing.T) {
	e, _, _ := newTestServer(t)

	// A syntactically valid but absent id lands in the history as NOT_FOUND.
	perform(e, http.MethodGet, "/api/v1/projects/"+uuid.NewString(), "")

	rec := perform(e, http.MethodGet, "/api/v1/errors/recent", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	errs := body["errors"].([]any)
	require.NotEmpty(t, errs)
	first := errs[0].(map[string]any)
	assert.Equal(t, string(apperr.KindNotFound), first["kind"])
}

func TestWriteErrorNetworkWording(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")
	require.NoError(t, WriteError(c, apperr.Network(cause, "upstream unreachable")))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	// The 502 mapping must not drag the message into the generic >=500
	// wording; network errors keep their network-specific text.
	body := decode(t, rec)
	assert.Equal(t, apperr.FriendlyMessage(apperr.KindNetwork, 0), body["message"])
	errBody := body["error"].(map[string]any)
	assert.Equal(t, string(apperr.KindNetwork), errBody["kind"])
	assert.EqualValues(t, http.StatusBadGateway, errBody["code"])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(apperr.KindValidation))
	assert.Equal(t, http.StatusUnauthorized, statusFor(apperr.KindAuthentication))
	assert.Equal(t, http.StatusForbidden, statusFor(apperr.KindAuthorization))
	assert.Equal(t, http.StatusNotFound, statusFor(apperr.KindNotFound))
	assert.Equal(t, http.StatusBadGateway, statusFor(apperr.KindNetwork))
	assert.Equal(t, http.StatusInternalServerError, statusFor(apperr.KindStorage))
	assert.Equal(t, http.StatusInternalServerError, statusFor(apperr.KindServer))
	assert.Equal(t, http.StatusInternalServerError, statusFor(apperr.KindUnknown))
}
