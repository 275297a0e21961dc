package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thepalace/palace_backend/middleware"
	"github.com/thepalace/palace_backend/models"
	ws "github.com/thepalace/palace_backend/websocket"
)

// RegisterScreenRoutes sets up the three navigation targets. The guard runs
// without the JWT middleware in front so a missing identity redirects to the
// login screen instead of failing with 401.
func RegisterScreenRoutes(e *echo.Echo, hub *ws.Hub) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Login screen",
		})
	})

	e.GET("/admin", func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Admin dashboard screen",
		})
	}, middleware.RouteGuard("admin"))

	e.GET("/employee", func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Employee dashboard screen",
		})
	}, middleware.RouteGuard(""))

	// Guard decision surface: clients ask where a navigation target would
	// take the current session before rendering anything
	e.GET("/api/guard", guardDecision)

	// Session event feed. Events carry identity details, so the upgrade is
	// gated on a live session token; browser clients cannot set headers on a
	// WebSocket handshake, so a token query parameter is accepted too.
	e.GET("/ws", func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			if token := c.QueryParam("token"); token != "" {
				auth = "Bearer " + token
			}
		}
		if middleware.VerifyBearer(auth) == nil {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid or expired token",
			})
		}
		return ws.HandleWebSocket(c, hub)
	})
}

// screenRoles maps each navigation target to the role its screen requires.
// An empty role admits any authenticated session.
var screenRoles = map[string]string{
	"/admin":    "admin",
	"/employee": "",
}

func guardDecision(c echo.Context) error {
	target := c.QueryParam("target")
	if target == "" {
		target = "/"
	}

	requiredRole, guarded := screenRoles[target]
	if !guarded && target != "/" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown navigation target",
		})
	}

	state := middleware.GuardStateFromContext(c)

	// The login screen itself is public
	decision := middleware.DecisionAllow
	if target != "/" {
		decision = middleware.Decide(state, requiredRole)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Guard decision",
		Data: map[string]interface{}{
			"target":   target,
			"allowed":  decision == middleware.DecisionAllow,
			"loading":  decision == middleware.DecisionLoading,
			"redirect": decision.Target(),
		},
	})
}
