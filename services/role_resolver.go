// services/role_resolver.go
package services

import (
	"context"
	"log"

	"github.com/thepalace/palace_backend/models"
)

// DefaultRole is the fallback when no profile matches an authenticated
// email or the profile has no role field.
const DefaultRole = "user"

// UserFinder is the slice of the profile store the resolver needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RoleResolver maps an authenticated email to its role string. It runs on
// every auth transition, so the cost is one equality-filtered lookup per
// sign-in or session-change event.
type RoleResolver struct {
	users UserFinder
}

func NewRoleResolver(users UserFinder) *RoleResolver {
	return &RoleResolver{users: users}
}

// ResolveRole returns the lower-cased role of the first profile matching
// the email, or DefaultRole when none is found. It never fails outward:
// lookup errors degrade to DefaultRole.
func (r *RoleResolver) ResolveRole(ctx context.Context, email string) string {
	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("Role lookup failed for %s, defaulting to %q: %v", email, DefaultRole, err)
		return DefaultRole
	}
	if user == nil || user.Role == "" {
		return DefaultRole
	}
	return string(models.ParseRole(user.Role))
}
