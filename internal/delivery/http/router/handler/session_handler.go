package handler

import (
	"net/http"

	"moducare/internal/delivery/http/response"
	"moducare/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionHandler exposes the authenticated session over the local gateway.
type SessionHandler struct {
	sessionUC usecase.SessionUsecase
}

// NewSessionHandler is the constructor for SessionHandler.
func NewSessionHandler(sessionUC usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC}
}

// LoginRequest is the payload for the login endpoint.
type LoginRequest struct {
	Provider string `json:"provider" validate:"required"`
	Token    string `json:"token" validate:"required"`
}

// SessionResponse reports the session state to the caller.
type SessionResponse struct {
	Status string `json:"status"`
}

// Login exchanges a provider token for an authenticated session.
func (h *SessionHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_REQUEST_BODY", "요청 형식이 올바르지 않습니다")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.sessionUC.Login(c.Request().Context(), &usecase.LoginInput{
		Provider: req.Provider,
		Token:    req.Token,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, SessionResponse{Status: session.Status.String()}, "로그인 성공")
}

// Logout revokes the session and clears local state.
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessionUC.Logout(c.Request().Context()); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "로그아웃 성공")
}

// DeleteAccount deletes the member account and clears local state.
func (h *SessionHandler) DeleteAccount(c echo.Context) error {
	if err := h.sessionUC.DeleteAccount(c.Request().Context()); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "회원 탈퇴 완료")
}

// Status reports the current session state without touching the backend.
func (h *SessionHandler) Status(c echo.Context) error {
	return response.Success(c, http.StatusOK, SessionResponse{Status: h.sessionUC.Status().String()}, "")
}

// Profile returns the profile captured at login.
func (h *SessionHandler) Profile(c echo.Context) error {
	profile, err := h.sessionUC.Profile(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, profile, "")
}
