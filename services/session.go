// services/session.go
package services

import (
	"context"
	"sync"

	"github.com/thepalace/palace_backend/models"
)

// TokenIssuer mints the session token handed back to the client after a
// successful login. Wired to middleware.GenerateJWT in main.
type TokenIssuer func(uid, email, role string) (string, error)

// SessionContext is the process-wide session state: identity, resolved role
// and the loading flag. It starts loading and stays so until the first
// session-change callback, role resolution included, has completed.
//
// The explicit Login path and the session-change listener both resolve a
// role for the same sign-in. Each resolution carries a monotonic sequence
// number and only the highest applied sequence sticks, so the race between
// the two paths cannot leave a stale role behind.
type SessionContext struct {
	gateway  *IdentityGateway
	resolver *RoleResolver
	issuer   TokenIssuer

	mu         sync.Mutex
	identity   *Identity
	role       string
	loading    bool
	nextSeq    uint64
	appliedSeq uint64

	unsubscribe func()
}

func NewSessionContext(gateway *IdentityGateway, resolver *RoleResolver, issuer TokenIssuer) *SessionContext {
	return &SessionContext{
		gateway:  gateway,
		resolver: resolver,
		issuer:   issuer,
		loading:  true,
	}
}

// Init subscribes to the identity gateway. The listener fires immediately
// with the current state, which clears the loading flag on startup.
func (s *SessionContext) Init() {
	s.unsubscribe = s.gateway.OnSessionChange(func(identity *Identity) {
		s.handleSessionChange(identity)
	})
}

// Teardown unsubscribes and resets the session to signed-out.
func (s *SessionContext) Teardown() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}

	s.mu.Lock()
	s.identity = nil
	s.role = ""
	s.mu.Unlock()
}

func (s *SessionContext) handleSessionChange(identity *Identity) {
	if identity == nil {
		s.mu.Lock()
		s.identity = nil
		s.role = ""
		s.loading = false
		s.mu.Unlock()
		return
	}

	seq := s.claimSeq(identity)
	role := s.resolver.ResolveRole(context.Background(), identity.Email)
	s.applyRole(seq, role)

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// claimSeq records the identity and reserves a sequence number for a role
// resolution attempt on its behalf.
func (s *SessionContext) claimSeq(identity *Identity) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.nextSeq++
	return s.nextSeq
}

// applyRole stores a resolved role unless a later resolution already won.
func (s *SessionContext) applyRole(seq uint64, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.appliedSeq {
		return
	}
	s.appliedSeq = seq
	s.role = role
}

// Login signs in through the gateway, resolves and caches the role, and
// returns the session token plus the normalized role for the caller's
// immediate redirect decision. The session-change listener re-resolves the
// same role moments later; both paths normalize identically.
func (s *SessionContext) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	identity, err := s.gateway.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	seq := s.claimSeq(identity)
	role := s.resolver.ResolveRole(ctx, identity.Email)
	s.applyRole(seq, role)

	token, err := s.issuer(identity.UID, identity.Email, role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		UID:   identity.UID,
		Email: identity.Email,
		Role:  role,
		Token: token,
	}, nil
}

// Logout signs the current identity out. Always succeeds locally.
func (s *SessionContext) Logout() {
	s.mu.Lock()
	uid := ""
	if s.identity != nil {
		uid = s.identity.UID
	}
	s.mu.Unlock()

	s.gateway.SignOut(uid)
}

// Snapshot returns the session state for clients and the route guard.
func (s *SessionContext) Snapshot() models.SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := models.SessionInfo{Loading: s.loading}
	if s.identity != nil {
		info.UID = s.identity.UID
		info.Email = s.identity.Email
		info.Role = s.role
	}
	return info
}
