// Package error defines domain-specific errors for the Finwise application.
package error

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Investment domain errors.
var (
	// ErrInvestmentCategoryNotFound is returned when a category does not exist
	// or does not belong to the caller.
	ErrInvestmentCategoryNotFound = errors.New("investment category not found")

	// ErrInvestmentCategoryNameTaken is returned when the owner already has a
	// category with the same name.
	ErrInvestmentCategoryNameTaken = errors.New("an investment category with this name already exists")

	// ErrInvalidInvestmentCategoryType is returned when the category type is unknown.
	ErrInvalidInvestmentCategoryType = errors.New("invalid investment category type")

	// ErrNoInvestmentsToAllocate is returned when the owner has no INVESTMENT
	// transactions to allocate against.
	ErrNoInvestmentsToAllocate = errors.New("no investments to allocate; add investment transactions first")

	// ErrAllocationExceedsAvailable is returned when an allocation write would
	// push the allocated sum past the total invested.
	ErrAllocationExceedsAvailable = errors.New("allocation amount exceeds the available total")

	// ErrAllocationNotFound is returned when an allocation row does not exist.
	ErrAllocationNotFound = errors.New("allocation not found")

	// ErrInvalidAllocationAmount is returned when the allocation amount is negative.
	ErrInvalidAllocationAmount = errors.New("allocation amount must not be negative")
)

// InvestmentErrorCode defines error codes for investment errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvestmentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvestmentCategoryNotFound    InvestmentErrorCode = "INV-010001"
	ErrCodeInvestmentCategoryNameTaken   InvestmentErrorCode = "INV-010002"
	ErrCodeInvalidInvestmentCategoryType InvestmentErrorCode = "INV-010003"
	ErrCodeNoInvestmentsToAllocate       InvestmentErrorCode = "INV-010004"
	ErrCodeAllocationExceedsAvailable    InvestmentErrorCode = "INV-010005"
	ErrCodeAllocationNotFound            InvestmentErrorCode = "INV-010006"
	ErrCodeInvalidAllocationAmount       InvestmentErrorCode = "INV-010007"
)

// InvestmentError represents an investment error with code and message.
type InvestmentError struct {
	Code    InvestmentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvestmentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvestmentError) Unwrap() error {
	return e.Err
}

// NewInvestmentError creates a new InvestmentError with the given code and message.
func NewInvestmentError(code InvestmentErrorCode, message string, err error) *InvestmentError {
	return &InvestmentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AllocationLimitError is raised when an allocation write exceeds the
// remaining capacity. It carries the exact computed limit and total so the
// message can surface precise currency values.
type AllocationLimitError struct {
	MaxAllowed    decimal.Decimal
	TotalInvested decimal.Decimal
	Message       string
}

// Error implements the error interface.
func (e *AllocationLimitError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel limit error so callers can use errors.Is.
func (e *AllocationLimitError) Unwrap() error {
	return ErrAllocationExceedsAvailable
}
