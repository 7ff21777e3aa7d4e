// Package error defines domain-specific errors for the Finwise application.
package error

import "errors"

// Recurring subscription domain errors.
var (
	// ErrSubscriptionNotFound is returned when a subscription does not exist or
	// does not belong to the caller.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrSubscriptionNameTaken is returned when the owner already has a
	// subscription with the same name.
	ErrSubscriptionNameTaken = errors.New("a subscription with this name already exists")

	// ErrSubscriptionLimitReached is returned when a basic-plan user tries to
	// create more than the allowed number of subscriptions.
	ErrSubscriptionLimitReached = errors.New("subscription limit reached; upgrade to premium for unlimited subscriptions")

	// ErrInvalidSubscriptionAmount is returned when the amount is zero or negative.
	ErrInvalidSubscriptionAmount = errors.New("subscription amount must be positive")
)

// SubscriptionErrorCode defines error codes for subscription errors.
// Format: SUB-XXYYYY where XX is category and YYYY is specific error.
type SubscriptionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeSubscriptionNotFound      SubscriptionErrorCode = "SUB-010001"
	ErrCodeSubscriptionNameTaken     SubscriptionErrorCode = "SUB-010002"
	ErrCodeInvalidSubscriptionAmount SubscriptionErrorCode = "SUB-010003"

	// Limit errors (02XXXX)
	ErrCodeSubscriptionLimitReached SubscriptionErrorCode = "SUB-020001"
)

// SubscriptionError represents a subscription error with code and message.
type SubscriptionError struct {
	Code    SubscriptionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SubscriptionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

// NewSubscriptionError creates a new SubscriptionError with the given code and message.
func NewSubscriptionError(code SubscriptionErrorCode, message string, err error) *SubscriptionError {
	return &SubscriptionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
