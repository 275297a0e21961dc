package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name         string
		state        GuardState
		requiredRole string
		want         Decision
	}{
		{
			name:  "loading suppresses everything",
			state: GuardState{Loading: true, UID: "u1", Role: "admin"},
			want:  DecisionLoading,
		},
		{
			name:  "no identity redirects to login",
			state: GuardState{},
			want:  DecisionRedirectLogin,
		},
		{
			name:         "no identity redirects to login even with required role",
			state:        GuardState{},
			requiredRole: "admin",
			want:         DecisionRedirectLogin,
		},
		{
			name:         "matching role is allowed",
			state:        GuardState{UID: "u1", Role: "admin"},
			requiredRole: "admin",
			want:         DecisionAllow,
		},
		{
			name:         "match is case-insensitive both ways",
			state:        GuardState{UID: "u1", Role: "Admin"},
			requiredRole: "ADMIN",
			want:         DecisionAllow,
		},
		{
			name:         "empty required role admits any authenticated session",
			state:        GuardState{UID: "u1", Role: "serveur"},
			want:         DecisionAllow,
		},
		{
			name:         "mismatched admin bounces to admin screen",
			state:        GuardState{UID: "u1", Role: "admin"},
			requiredRole: "manager",
			want:         DecisionRedirectAdmin,
		},
		{
			name:         "mismatched employee bounces to employee screen",
			state:        GuardState{UID: "u1", Role: "employee"},
			requiredRole: "admin",
			want:         DecisionRedirectEmployee,
		},
		{
			name:         "unknown third role also lands on employee screen",
			state:        GuardState{UID: "u1", Role: "manager"},
			requiredRole: "admin",
			want:         DecisionRedirectEmployee,
		},
		{
			name:         "empty role falls back to user tier and bounces",
			state:        GuardState{UID: "u1", Role: ""},
			requiredRole: "admin",
			want:         DecisionRedirectEmployee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.state, tt.requiredRole)
			assert.Equal(t, tt.want, got)

			// Same inputs, same output: the decision depends on nothing else
			assert.Equal(t, got, Decide(tt.state, tt.requiredRole))
		})
	}
}

func TestDecisionTarget(t *testing.T) {
	assert.Equal(t, "/", DecisionRedirectLogin.Target())
	assert.Equal(t, "/admin", DecisionRedirectAdmin.Target())
	assert.Equal(t, "/employee", DecisionRedirectEmployee.Target())
	assert.Equal(t, "", DecisionAllow.Target())
	assert.Equal(t, "", DecisionLoading.Target())
}

func TestRouteGuardRedirectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/employee", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RouteGuard("")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
