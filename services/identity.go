// services/identity.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// Identity is the authenticated principal record as reported by the
// identity provider.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// SessionListener receives the current identity on registration and again
// on every sign-in or sign-out. A nil identity means signed out.
type SessionListener func(identity *Identity)

// IdentityGateway wraps the external auth provider. Credential checks,
// account provisioning and revocation are all delegated; the gateway adds
// only empty-field validation and session-change notification.
type IdentityGateway struct {
	authClient *firebaseauth.Client
	apiKey     string
	httpClient *http.Client

	mu        sync.Mutex
	current   *Identity
	listeners map[int]SessionListener
	nextID    int
}

// NewIdentityGateway creates the gateway from an initialized Firebase app.
func NewIdentityGateway(app *firebase.App, apiKey string) (*IdentityGateway, error) {
	authClient, err := app.Auth(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client: %w", err)
	}

	return &IdentityGateway{
		authClient: authClient,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		listeners:  make(map[int]SessionListener),
	}, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn verifies the credentials against the provider's password sign-in
// endpoint. Empty fields fail with ErrMissingCredentials before any network
// call; rejected credentials fail with ErrInvalidCredentials.
func (g *IdentityGateway) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if g.apiKey == "" {
		return nil, fmt.Errorf("identity provider API key is not configured")
	}

	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, signInEndpoint+"?key="+g.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	var result signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode sign-in response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != nil {
			log.Printf("Sign-in rejected by identity provider: %s", result.Error.Message)
		}
		return nil, ErrInvalidCredentials
	}

	identity := &Identity{UID: result.LocalID, Email: result.Email}
	g.setCurrent(identity)
	return identity, nil
}

// CreateIdentity provisions a new account with the identity provider and
// returns its UID.
func (g *IdentityGateway) CreateIdentity(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	params := (&firebaseauth.UserToCreate{}).Email(email).Password(password)
	record, err := g.authClient.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create identity: %w", err)
	}
	return record.UID, nil
}

// DeleteIdentity removes a provider account. Used as best-effort rollback
// when the profile write fails after provisioning succeeded.
func (g *IdentityGateway) DeleteIdentity(ctx context.Context, uid string) error {
	return g.authClient.DeleteUser(ctx, uid)
}

// SignOut terminates the session. The local state change always succeeds;
// the provider-side revocation runs fire-and-forget.
func (g *IdentityGateway) SignOut(uid string) {
	g.setCurrent(nil)

	if uid == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := g.authClient.RevokeRefreshTokens(ctx, uid); err != nil {
			log.Printf("Warning: failed to revoke refresh tokens for %s: %v", uid, err)
		}
	}()
}

// OnSessionChange registers a listener. It is invoked once immediately with
// the current state, nil included, then on every transition. The returned
// func unsubscribes.
func (g *IdentityGateway) OnSessionChange(listener SessionListener) func() {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = listener
	current := g.current
	g.mu.Unlock()

	listener(current)

	return func() {
		g.mu.Lock()
		delete(g.listeners, id)
		g.mu.Unlock()
	}
}

// CurrentIdentity returns the identity of the active session, or nil.
func (g *IdentityGateway) CurrentIdentity() *Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

func (g *IdentityGateway) setCurrent(identity *Identity) {
	g.mu.Lock()
	g.current = identity
	listeners := make([]SessionListener, 0, len(g.listeners))
	for _, l := range g.listeners {
		listeners = append(listeners, l)
	}
	g.mu.Unlock()

	for _, l := range listeners {
		l(identity)
	}
}
