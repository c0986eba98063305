package errors

import (
	"net/http"

	"moducare/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"이메일 또는 비밀번호가 올바르지 않습니다",
		"",
	)

	ErrAuthNetworkFailure = NewBaseError(
		http.StatusBadGateway,
		"AUTH_NETWORK_FAILURE",
		"인증 서버에 연결할 수 없습니다",
		"",
	)

	ErrRefreshExpired = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_EXPIRED",
		"로그인이 만료되었습니다. 다시 로그인해 주세요",
		"",
	)

	ErrSessionRequired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_REQUIRED",
		"로그인이 필요합니다",
		"",
	)

	// Remote data errors
	ErrLoaderFailed = NewBaseError(
		http.StatusBadGateway,
		"CACHE_LOADER_FAILED",
		"데이터를 불러오지 못했습니다",
		"",
	)

	ErrReportNotFound = NewBaseError(
		http.StatusNotFound,
		"REPORT_NOT_FOUND",
		"진단 내역을 찾을 수 없습니다",
		"",
	)

	ErrInvalidDiaryType = NewBaseError(
		http.StatusBadRequest,
		"INVALID_DIARY_TYPE",
		"지원하지 않는 부위 유형입니다",
		"",
	)

	// Document generation errors
	ErrRenderFailure = NewBaseError(
		http.StatusInternalServerError,
		"DOCUMENT_RENDER_FAILED",
		"결과지 생성에 실패했습니다",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"입력값 검증에 실패했습니다",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"시스템 내부 오류",
		"",
	)
)
