// controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"

	"github.com/thepalace/palace_backend/middleware"
	"github.com/thepalace/palace_backend/models"
	"github.com/thepalace/palace_backend/services"
)

type AuthController struct {
	Session *services.SessionContext
}

func NewAuthController(session *services.SessionContext) *AuthController {
	return &AuthController{Session: session}
}

// Login authenticates against the identity provider and returns the session
// token plus the resolved role for the client's redirect decision.
func (ac *AuthController) Login(c echo.Context) error {
	var loginReq models.LoginRequest
	if err := c.Bind(&loginReq); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	// Empty fields are rejected here, before the provider is contacted
	if loginReq.Email == "" || loginReq.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	result, err := ac.Session.Login(c.Request().Context(), loginReq.Email, loginReq.Password)
	if err != nil {
		if errors.Is(err, services.ErrMissingCredentials) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Email and password are required",
			})
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Generic on purpose: never reveal which field was wrong
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid credentials",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Login failed: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data:    result,
	})
}

// Logout revokes the presented token and signs the session out. It always
// succeeds locally even when the provider call fails.
func (ac *AuthController) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	if tokenString != "" && tokenString != authHeader {
		expiry := time.Now().Add(24 * time.Hour)
		if claims := parseClaims(tokenString); claims != nil && claims.ExpiresAt > 0 {
			expiry = time.Unix(claims.ExpiresAt, 0)
		}
		middleware.BlacklistToken(tokenString, expiry)
	}

	ac.Session.Logout()

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logged out successfully",
	})
}

// GetSession exposes the current session snapshot, loading flag included.
func (ac *AuthController) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Session state",
		Data:    ac.Session.Snapshot(),
	})
}

// parseClaims decodes the token without verifying it; logout only needs the
// expiry to size the blacklist entry.
func parseClaims(tokenString string) *middleware.JwtCustomClaims {
	claims := &middleware.JwtCustomClaims{}
	parser := &jwt.Parser{}
	_, _, err := parser.ParseUnverified(tokenString, claims)
	if err != nil {
		return nil
	}
	return claims
}
