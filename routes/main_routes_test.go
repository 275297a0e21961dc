package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	ws "github.com/thepalace/palace_backend/websocket"
)

func newGuardContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/guard?target="+target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGuardDecisionAnonymousRedirectsToLogin(t *testing.T) {
	c, rec := newGuardContext("/admin")

	err := guardDecision(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"allowed":false`)
	assert.Contains(t, rec.Body.String(), `"redirect":"/"`)
}

func TestGuardDecisionLoginScreenIsPublic(t *testing.T) {
	c, rec := newGuardContext("/")

	err := guardDecision(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"allowed":true`)
}

func TestGuardDecisionRejectsUnknownTarget(t *testing.T) {
	c, rec := newGuardContext("/vault")

	err := guardDecision(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionFeedRejectsAnonymousClients(t *testing.T) {
	e := echo.New()
	hub := ws.NewHub()
	RegisterScreenRoutes(e, hub)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
