package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thepalace/palace_backend/middleware"
)

func newTicketContext(t *testing.T, uid, ticketID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(ticketID)
	c.Set("user", &jwt.Token{Claims: &middleware.JwtCustomClaims{UID: uid, Email: "bar@palace.fr"}})
	return c, rec
}

func TestTicketFilterScopesToOwner(t *testing.T) {
	id := primitive.NewObjectID()

	// Back-office lookups see every ticket
	filter := ticketFilter(id, "")
	assert.Equal(t, id, filter["_id"])
	assert.NotContains(t, filter, "userId")

	// Sales-screen lookups only see the caller's own tickets
	filter = ticketFilter(id, "u1")
	assert.Equal(t, id, filter["_id"])
	assert.Equal(t, "u1", filter["userId"])
}

func TestMyTicketQRCodeRejectsInvalidID(t *testing.T) {
	tc := NewTicketController(nil)

	c, rec := newTicketContext(t, "u1", "not-a-hex-id")
	err := tc.GetMyTicketQRCode(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMyTicketRejectsInvalidID(t *testing.T) {
	tc := NewTicketController(nil)

	c, rec := newTicketContext(t, "u1", "not-a-hex-id")
	err := tc.DeleteMyTicket(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
