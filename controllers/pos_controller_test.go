package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thepalace/palace_backend/middleware"
	"github.com/thepalace/palace_backend/models"
	"github.com/thepalace/palace_backend/services"
)

func newTestCartProduct(name string, price float64) models.Product {
	return models.Product{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Price: price,
	}
}

func newPOSContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &jwt.Token{Claims: &middleware.JwtCustomClaims{UID: "u1", Email: "bar@palace.fr"}})
	return c, rec
}

func TestValidateTicketRejectsEmptyCart(t *testing.T) {
	// No database is wired: the empty-cart check must fire before any
	// persistence is attempted
	pc := NewPOSController(nil, services.NewCartService(), nil)

	c, rec := newPOSContext(t, http.MethodPost, "")
	err := pc.ValidateTicket(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart is empty")
}

func TestValidateTicketEmptyCartAfterClear(t *testing.T) {
	carts := services.NewCartService()
	carts.Add("u1", newTestCartProduct("Beer", 10))
	carts.Clear("u1")

	pc := NewPOSController(nil, carts, nil)

	c, rec := newPOSContext(t, http.MethodPost, "")
	err := pc.ValidateTicket(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddToCartRequiresProductID(t *testing.T) {
	pc := NewPOSController(nil, services.NewCartService(), nil)

	c, rec := newPOSContext(t, http.MethodPost, `{}`)
	err := pc.AddToCart(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddToCartRejectsMalformedProductID(t *testing.T) {
	pc := NewPOSController(nil, services.NewCartService(), nil)

	c, rec := newPOSContext(t, http.MethodPost, `{"productId":"not-a-hex-id"}`)
	err := pc.AddToCart(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
