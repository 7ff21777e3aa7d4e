// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse is the standard error payload for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
