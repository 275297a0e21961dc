// middleware/route_guard.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"

	"github.com/thepalace/palace_backend/models"
)

// GuardState is the session snapshot the guard decides over. Decisions
// depend on nothing else: loading flag, identity presence and the two
// normalized role strings.
type GuardState struct {
	Loading bool
	UID     string
	Role    string
}

// Decision is the outcome of a guard evaluation
type Decision int

const (
	// DecisionLoading suppresses rendering until the first session
	// resolution completes; no redirect is issued.
	DecisionLoading Decision = iota
	// DecisionRedirectLogin sends an unauthenticated session to "/"
	DecisionRedirectLogin
	// DecisionRedirectAdmin bounces a mismatched admin session to "/admin"
	DecisionRedirectAdmin
	// DecisionRedirectEmployee bounces every other mismatched session to
	// "/employee". There is no generic forbidden destination: the policy is
	// binary, admin versus everyone else.
	DecisionRedirectEmployee
	// DecisionAllow renders the protected content
	DecisionAllow
)

// Target returns the redirect destination for redirect decisions, or ""
func (d Decision) Target() string {
	switch d {
	case DecisionRedirectLogin:
		return "/"
	case DecisionRedirectAdmin:
		return "/admin"
	case DecisionRedirectEmployee:
		return "/employee"
	}
	return ""
}

// Decide evaluates whether a session may view a screen guarded by
// requiredRole. An empty requiredRole admits any authenticated session.
func Decide(state GuardState, requiredRole string) Decision {
	if state.Loading {
		return DecisionLoading
	}
	if state.UID == "" {
		return DecisionRedirectLogin
	}

	if requiredRole == "" {
		return DecisionAllow
	}

	sessionRole := models.ParseRole(state.Role)
	if sessionRole == models.ParseRole(requiredRole) {
		return DecisionAllow
	}

	if sessionRole.IsAdmin() {
		return DecisionRedirectAdmin
	}
	return DecisionRedirectEmployee
}

// GuardStateFromContext builds the guard input from the JWT claims set by
// JWTMiddleware, falling back to verifying a bearer token directly so the
// guard can run on screen routes without the JWT middleware in front. An
// absent or invalid token is an absent identity, which redirects to login
// instead of failing with 401.
func GuardStateFromContext(c echo.Context) GuardState {
	claims := GetUserFromToken(c)
	if claims == nil {
		claims = VerifyBearer(c.Request().Header.Get("Authorization"))
	}
	if claims == nil {
		return GuardState{}
	}
	return GuardState{UID: claims.UID, Role: claims.Role}
}

// VerifyBearer parses and verifies a "Bearer <token>" header value, honoring
// the revocation blacklist. Returns nil for anything not a valid live token.
func VerifyBearer(authHeader string) *JwtCustomClaims {
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" || tokenString == authHeader {
		return nil
	}
	if IsTokenBlacklisted(tokenString) {
		return nil
	}

	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(GetJWTSecret()), nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}

// RouteGuard enforces a screen's required role, translating guard decisions
// into HTTP behavior: placeholder for loading, 302 for redirects.
func RouteGuard(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := Decide(GuardStateFromContext(c), requiredRole)

			switch decision {
			case DecisionLoading:
				return c.JSON(http.StatusOK, models.Response{
					Status:  http.StatusOK,
					Message: "Loading...",
				})
			case DecisionAllow:
				return next(c)
			default:
				return c.Redirect(http.StatusFound, decision.Target())
			}
		}
	}
}
