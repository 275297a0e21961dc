// models/role.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a named commission tier. Users copy the commission rate at
// creation time; deleting a role leaves those snapshots untouched.
type Role struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Commission float64            `json:"commission" bson:"commission"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateRoleRequest is the admin payload for a new commission tier.
type CreateRoleRequest struct {
	Name       string  `json:"name" validate:"required"`
	Commission float64 `json:"commission" validate:"gte=0"`
}

// RoleName is the normalized form of a role string. Comparison happens in
// exactly one place instead of ad hoc lowercasing at every call site.
type RoleName string

const (
	RoleAdmin    RoleName = "admin"
	RoleEmployee RoleName = "employee"
	RoleUser     RoleName = "user"
)

// ParseRole normalizes an arbitrary role string. An empty string maps to
// RoleUser, the resolver's fallback for profiles with no role field.
func ParseRole(s string) RoleName {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleUser
	}
	return RoleName(s)
}

// IsAdmin reports whether the role grants access to the back office.
func (r RoleName) IsAdmin() bool {
	return r == RoleAdmin
}
