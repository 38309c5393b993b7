package api

import "encoding/json"

// SearchRequest is the body of an account search. The id may be sent as a
// JSON number or string.
type SearchRequest struct {
	AccountID json.Number `json:"account_id" form:"account_id"`
}

// FilterQuery holds the filter query parameters shared by the dashboard views
type FilterQuery struct {
	Start     string `form:"start"`
	End       string `form:"end"`
	Timespan  string `form:"timespan"`
	Meal      string `form:"meal"`
	Symptom   string `form:"symptom"`
	MinGrade  int    `form:"min_grade"`
	Size      int    `form:"size"`
	SessionID string `form:"session_id"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports the state of the API and its backing stores
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
