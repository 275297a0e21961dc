package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("Admin"))
	assert.Equal(t, RoleAdmin, ParseRole("  ADMIN "))
	assert.Equal(t, RoleEmployee, ParseRole("employee"))
	assert.Equal(t, RoleUser, ParseRole(""))
	assert.Equal(t, RoleName("serveur"), ParseRole("Serveur"))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleEmployee.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
	assert.False(t, RoleName("manager").IsAdmin())
}
