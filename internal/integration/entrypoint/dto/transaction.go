// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finwise/backend/internal/domain/entity"
)

// TransactionRequest represents the create/update transaction request body.
// Date is a "2006-01-02" string.
type TransactionRequest struct {
	Name          string  `json:"name" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Date          string  `json:"date" binding:"required"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	PaymentMethod string  `json:"payment_method"`
	Date          string  `json:"date"`
}

// TransactionListResponse represents a month's ledger.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// CanAddTransactionResponse tells the client whether another transaction may
// be created this month. Remaining is -1 for unlimited plans.
type CanAddTransactionResponse struct {
	Allowed   bool  `json:"allowed"`
	Remaining int64 `json:"remaining"`
}

// ToTransactionResponse converts a transaction entity to its response DTO.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	amount, _ := transaction.Amount.Float64()
	return TransactionResponse{
		ID:            transaction.ID.String(),
		Name:          transaction.Name,
		Amount:        amount,
		Type:          string(transaction.Type),
		Category:      string(transaction.Category),
		PaymentMethod: string(transaction.PaymentMethod),
		Date:          transaction.Date.Format("2006-01-02"),
	}
}

// ToTransactionListResponse converts a transaction slice to its response DTO.
func ToTransactionListResponse(transactions []*entity.Transaction) TransactionListResponse {
	items := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		items[i] = ToTransactionResponse(transaction)
	}
	return TransactionListResponse{Transactions: items}
}
