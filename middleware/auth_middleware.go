// middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thepalace/palace_backend/models"
)

// RequireRole checks if the authenticated session holds one of the allowed
// roles. Comparison goes through models.ParseRole so "Admin" and "admin"
// are the same tier.
func RequireRole(allowedRoles ...models.RoleName) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetUserFromToken(c)
			if claims == nil {
				c.Logger().Error("Authentication failed: no session claims")
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication failed: no session claims",
				})
			}

			role := models.ParseRole(claims.Role)
			for _, allowed := range allowedRoles {
				if role == allowed {
					return next(c)
				}
			}

			c.Logger().Errorf("Access denied for role: %s, allowed roles: %v", role, allowedRoles)
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Access denied for your role",
			})
		}
	}
}
