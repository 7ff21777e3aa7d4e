// Package error defines domain-specific errors for the Finwise application.
package error

import "errors"

// Auth domain errors.
var (
	// ErrEmailAlreadyRegistered is returned when the email is already in use.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned when a user record does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingToken is returned when no access token was provided.
	ErrMissingToken = errors.New("missing access token")

	// ErrInvalidToken is returned when the access token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired access token")

	// ErrPremiumRequired is returned when a premium-only feature is requested
	// by a basic-plan user.
	ErrPremiumRequired = errors.New("premium plan required")

	// ErrRateLimited is returned when too many requests were made.
	ErrRateLimited = errors.New("too many requests")
)

// AuthErrorCode defines error codes for auth errors.
// Format: AUT-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmailAlreadyRegistered AuthErrorCode = "AUT-010001"
	ErrCodeInvalidCredentials     AuthErrorCode = "AUT-010002"
	ErrCodeUserNotFound           AuthErrorCode = "AUT-010003"

	// Token errors (02XXXX)
	ErrCodeMissingToken AuthErrorCode = "AUT-020001"
	ErrCodeInvalidToken AuthErrorCode = "AUT-020002"

	// Plan errors (03XXXX)
	ErrCodePremiumRequired AuthErrorCode = "AUT-030001"

	// Rate limiting (04XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUT-040001"
)

// AuthError represents an auth error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
