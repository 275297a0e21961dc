package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thepalace/palace_backend/models"
)

type fakeUserFinder struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUserFinder) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func TestResolveRoleLowercasesStoredRole(t *testing.T) {
	resolver := NewRoleResolver(&fakeUserFinder{users: map[string]*models.User{
		"boss@palace.fr": {Email: "boss@palace.fr", Role: "Admin"},
	}})

	assert.Equal(t, "admin", resolver.ResolveRole(context.Background(), "boss@palace.fr"))
}

func TestResolveRoleDefaultsWhenNotFound(t *testing.T) {
	resolver := NewRoleResolver(&fakeUserFinder{users: map[string]*models.User{}})

	assert.Equal(t, "user", resolver.ResolveRole(context.Background(), "ghost@palace.fr"))
}

func TestResolveRoleDefaultsWhenRoleFieldAbsent(t *testing.T) {
	resolver := NewRoleResolver(&fakeUserFinder{users: map[string]*models.User{
		"new@palace.fr": {Email: "new@palace.fr"},
	}})

	assert.Equal(t, "user", resolver.ResolveRole(context.Background(), "new@palace.fr"))
}

func TestResolveRoleNeverFailsOutward(t *testing.T) {
	resolver := NewRoleResolver(&fakeUserFinder{err: errors.New("connection reset")})

	assert.Equal(t, "user", resolver.ResolveRole(context.Background(), "boss@palace.fr"))
}

func TestResolveRoleIsCaseSensitiveOnEmail(t *testing.T) {
	resolver := NewRoleResolver(&fakeUserFinder{users: map[string]*models.User{
		"boss@palace.fr": {Email: "boss@palace.fr", Role: "admin"},
	}})

	// Exact match only: a differently-cased email is a different key
	assert.Equal(t, "user", resolver.ResolveRole(context.Background(), "Boss@palace.fr"))
}
