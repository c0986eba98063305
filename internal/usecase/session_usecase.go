// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"moducare/internal/domain/entity"
)

// LoginInput defines the data required to log in.
type LoginInput struct {
	Provider string
	Token    string
}

// SessionUsecase owns the access-token lifecycle: login, the periodic
// silent refresh, and teardown. This is the contract the delivery layer
// depends on.
type SessionUsecase interface {
	// Login authenticates, persists the refresh token and profile to the
	// secure store, stamps the Authorization header and arms the refresh
	// timer. Failures are surfaced to the caller and never retried here.
	Login(ctx context.Context, input *LoginInput) (entity.Session, error)

	// Resume silently restores a session from a stored refresh token at
	// process start. Absence of a token is not an error.
	Resume(ctx context.Context) error

	// Logout tears the session down. Local state is always cleared, even
	// when the server call fails.
	Logout(ctx context.Context) error

	// DeleteAccount deletes the account server-side and tears the session
	// down like Logout.
	DeleteAccount(ctx context.Context) error

	// Status reports the current session state.
	Status() entity.SessionStatus

	// Profile returns the profile captured at login.
	Profile(ctx context.Context) (*entity.UserProfile, error)
}
