// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a financial movement.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeExpense    TransactionType = "EXPENSE"
	TransactionTypeInvestment TransactionType = "INVESTMENT"
)

// TransactionCategory is the closed set of labels a transaction can carry.
type TransactionCategory string

const (
	TransactionCategoryHousing        TransactionCategory = "HOUSING"
	TransactionCategoryTransportation TransactionCategory = "TRANSPORTATION"
	TransactionCategoryFood           TransactionCategory = "FOOD"
	TransactionCategoryEntertainment  TransactionCategory = "ENTERTAINMENT"
	TransactionCategoryHealth         TransactionCategory = "HEALTH"
	TransactionCategoryUtility        TransactionCategory = "UTILITY"
	TransactionCategorySalary         TransactionCategory = "SALARY"
	TransactionCategoryEducation      TransactionCategory = "EDUCATION"
	TransactionCategoryOther          TransactionCategory = "OTHER"
)

// TransactionPaymentMethod is the closed set of payment method labels.
type TransactionPaymentMethod string

const (
	PaymentMethodCreditCard   TransactionPaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    TransactionPaymentMethod = "DEBIT_CARD"
	PaymentMethodBankTransfer TransactionPaymentMethod = "BANK_TRANSFER"
	PaymentMethodBankSlip     TransactionPaymentMethod = "BANK_SLIP"
	PaymentMethodCash         TransactionPaymentMethod = "CASH"
	PaymentMethodPix          TransactionPaymentMethod = "PIX"
	PaymentMethodOther        TransactionPaymentMethod = "OTHER"
)

// Transaction represents a single financial movement in the ledger.
// Amount is always a positive magnitude; direction is implied by Type.
type Transaction struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Amount        decimal.Decimal
	Type          TransactionType
	Category      TransactionCategory
	PaymentMethod TransactionPaymentMethod
	Date          time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	name string,
	amount decimal.Decimal,
	transactionType TransactionType,
	category TransactionCategory,
	paymentMethod TransactionPaymentMethod,
	date time.Time,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Amount:        amount,
		Type:          transactionType,
		Category:      category,
		PaymentMethod: paymentMethod,
		Date:          date,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsValidTransactionType reports whether t is one of the known types.
func IsValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeDeposit ||
		t == TransactionTypeExpense ||
		t == TransactionTypeInvestment
}

// IsValidTransactionCategory reports whether c is one of the known categories.
func IsValidTransactionCategory(c TransactionCategory) bool {
	switch c {
	case TransactionCategoryHousing,
		TransactionCategoryTransportation,
		TransactionCategoryFood,
		TransactionCategoryEntertainment,
		TransactionCategoryHealth,
		TransactionCategoryUtility,
		TransactionCategorySalary,
		TransactionCategoryEducation,
		TransactionCategoryOther:
		return true
	}
	return false
}

// IsValidPaymentMethod reports whether m is one of the known payment methods.
func IsValidPaymentMethod(m TransactionPaymentMethod) bool {
	switch m {
	case PaymentMethodCreditCard,
		PaymentMethodDebitCard,
		PaymentMethodBankTransfer,
		PaymentMethodBankSlip,
		PaymentMethodCash,
		PaymentMethodPix,
		PaymentMethodOther:
		return true
	}
	return false
}
