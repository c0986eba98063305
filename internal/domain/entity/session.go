// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// SessionStatus is the tagged state of the client session. Transitions are
// driven only by the session scheduler and explicit logout/delete actions.
type SessionStatus int

const (
	// SessionUnauthenticated is the initial state; no credentials are held.
	SessionUnauthenticated SessionStatus = iota

	// SessionRefreshing means a token exchange is in flight.
	SessionRefreshing

	// SessionAuthenticated means a valid access token is held and applied
	// to the outbound header registry as "Authorization: Bearer <token>".
	SessionAuthenticated

	// SessionExpired means a scheduled refresh failed irrecoverably and the
	// user must log in again.
	SessionExpired
)

// String returns the wire representation of the status.
func (s SessionStatus) String() string {
	switch s {
	case SessionUnauthenticated:
		return "unauthenticated"
	case SessionRefreshing:
		return "refreshing"
	case SessionAuthenticated:
		return "authenticated"
	case SessionExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Session is a snapshot of the client's authentication state.
type Session struct {
	AccessToken  string        // Short-lived credential stamped on authenticated requests. Empty unless authenticated.
	RefreshToken string        // Long-lived credential exchanged for new access tokens. Persisted in the secure store, not here.
	Status       SessionStatus // Current state of the session state machine.
}

// Authenticated reports whether the session currently holds a usable access token.
func (s Session) Authenticated() bool {
	return s.Status == SessionAuthenticated && s.AccessToken != ""
}
