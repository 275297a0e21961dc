// models/auth.go

package models

// LoginRequest carries the sign-in credentials. Both fields are checked
// before the identity provider is contacted.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned to the caller for its immediate redirect
// decision: the session-change listener re-resolves the same role moments
// later and both paths must agree.
type LoginResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// SessionInfo is the session snapshot exposed to clients.
type SessionInfo struct {
	UID     string `json:"uid,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Loading bool   `json:"loading"`
}
