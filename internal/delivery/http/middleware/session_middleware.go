package middleware

import (
	"moducare/internal/domain/entity"
	domainerrors "moducare/internal/domain/errors"
	"moducare/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware gates routes on the local session state machine. The
// backend still verifies every forwarded token; this gate only avoids
// round-trips that are certain to fail.
type SessionMiddleware struct {
	sessionUC usecase.SessionUsecase
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessionUC usecase.SessionUsecase) *SessionMiddleware {
	return &SessionMiddleware{sessionUC: sessionUC}
}

// RequireAuthenticated rejects requests unless a session is established.
// Refreshing still passes: the previous access token stays registered until
// the exchange settles.
func (m *SessionMiddleware) RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		switch m.sessionUC.Status() {
		case entity.SessionAuthenticated, entity.SessionRefreshing:
			return next(c)
		default:
			return domainerrors.ErrSessionRequired
		}
	}
}
