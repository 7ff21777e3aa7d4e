// Package error defines domain-specific errors for the Finwise application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionCategory is returned when the category label is invalid.
	ErrInvalidTransactionCategory = errors.New("invalid transaction category")

	// ErrInvalidPaymentMethod is returned when the payment method label is invalid.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidTransactionAmount is returned when the amount is zero or negative.
	ErrInvalidTransactionAmount = errors.New("transaction amount must be positive")

	// ErrTransactionLimitReached is returned when a basic-plan user hits the
	// monthly transaction limit.
	ErrTransactionLimitReached = errors.New("monthly transaction limit reached; upgrade to premium for unlimited transactions")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType     TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionCategory TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidPaymentMethod       TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidTransactionAmount   TransactionErrorCode = "TXN-010004"
	ErrCodeTransactionNotFound        TransactionErrorCode = "TXN-010005"
	ErrCodeNotAuthorizedTransaction   TransactionErrorCode = "TXN-010006"

	// Limit errors (02XXXX)
	ErrCodeTransactionLimitReached TransactionErrorCode = "TXN-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
