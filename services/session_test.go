package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thepalace/palace_backend/models"
)

func fakeIssuer(uid, email, role string) (string, error) {
	return "token-" + uid, nil
}

func newTestSession(users map[string]*models.User) (*SessionContext, *IdentityGateway) {
	gateway := newTestGateway()
	resolver := NewRoleResolver(&fakeUserFinder{users: users})
	return NewSessionContext(gateway, resolver, fakeIssuer), gateway
}

func TestSessionStartsLoading(t *testing.T) {
	session, _ := newTestSession(nil)

	snapshot := session.Snapshot()
	assert.True(t, snapshot.Loading)
	assert.Empty(t, snapshot.UID)
}

func TestSessionInitClearsLoading(t *testing.T) {
	session, _ := newTestSession(nil)

	// The immediate signed-out callback completes the first resolution
	session.Init()
	defer session.Teardown()

	snapshot := session.Snapshot()
	assert.False(t, snapshot.Loading)
	assert.Empty(t, snapshot.UID)
}

func TestSessionResolvesRoleOnSignIn(t *testing.T) {
	session, gateway := newTestSession(map[string]*models.User{
		"boss@palace.fr": {Email: "boss@palace.fr", Role: "Admin"},
	})
	session.Init()
	defer session.Teardown()

	gateway.setCurrent(&Identity{UID: "u1", Email: "boss@palace.fr"})

	snapshot := session.Snapshot()
	assert.False(t, snapshot.Loading)
	assert.Equal(t, "u1", snapshot.UID)
	assert.Equal(t, "admin", snapshot.Role)
}

func TestSessionClearsRoleOnSignOut(t *testing.T) {
	session, gateway := newTestSession(map[string]*models.User{
		"boss@palace.fr": {Email: "boss@palace.fr", Role: "admin"},
	})
	session.Init()
	defer session.Teardown()

	gateway.setCurrent(&Identity{UID: "u1", Email: "boss@palace.fr"})
	gateway.setCurrent(nil)

	snapshot := session.Snapshot()
	assert.Empty(t, snapshot.UID)
	assert.Empty(t, snapshot.Role)
}

func TestSessionUnknownEmailFallsBackToUserRole(t *testing.T) {
	session, gateway := newTestSession(nil)
	session.Init()
	defer session.Teardown()

	gateway.setCurrent(&Identity{UID: "u2", Email: "ghost@palace.fr"})

	assert.Equal(t, "user", session.Snapshot().Role)
}

func TestLatestResolutionWinsBySequence(t *testing.T) {
	session, _ := newTestSession(nil)

	identity := &Identity{UID: "u1", Email: "boss@palace.fr"}
	first := session.claimSeq(identity)
	second := session.claimSeq(identity)

	// The later attempt lands first; the earlier one must not overwrite it
	session.applyRole(second, "admin")
	session.applyRole(first, "user")

	assert.Equal(t, "admin", session.Snapshot().Role)
}

func TestTeardownResetsSession(t *testing.T) {
	session, gateway := newTestSession(map[string]*models.User{
		"boss@palace.fr": {Email: "boss@palace.fr", Role: "admin"},
	})
	session.Init()
	gateway.setCurrent(&Identity{UID: "u1", Email: "boss@palace.fr"})

	session.Teardown()

	snapshot := session.Snapshot()
	assert.Empty(t, snapshot.UID)
	assert.Empty(t, snapshot.Role)

	// Unsubscribed: further gateway events no longer reach the session
	gateway.setCurrent(&Identity{UID: "u2", Email: "boss@palace.fr"})
	assert.Empty(t, session.Snapshot().UID)
}
