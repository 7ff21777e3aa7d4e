// Package dto defines data transfer objects for API requests and responses.
package dto

// PlanChangeEvent represents the payment provider's webhook payload. Events
// are keyed by the billing email, not by user ID.
type PlanChangeEvent struct {
	Email string `json:"email" binding:"required"`
	Plan  string `json:"plan" binding:"required"`
}
