package api

import "github.com/preppal-io/prep-pal/modules/inventory"

// OperationResult is the HTTP response of a successful operation.
type OperationResult struct {
	Success  bool               `json:"success"`
	ID       int                `json:"id,omitempty"`
	Snapshot inventory.Snapshot `json:"snapshot"`
}

// LocaleRequest is the HTTP request for changing the locale.
type LocaleRequest struct {
	Locale string `json:"locale"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
