// Package dto defines data transfer objects for API requests and responses.
package dto

// ReportResponse carries the generated monthly report text.
type ReportResponse struct {
	Report string `json:"report"`
}
