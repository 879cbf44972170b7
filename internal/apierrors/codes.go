// Package apierrors provides structured API error codes and responses.
// All codes are namespaced (e.g., "core:internal_error", "export:fetch_failed").
package apierrors

import "net/http"

// Core error codes - registered automatically at init
const (
	CodeInvalidRequest = "core:invalid_request"
	CodeNotFound       = "core:not_found"
	CodeInternalError  = "core:internal_error"
)

// Export pipeline error codes
const (
	// Request validation
	CodeInvalidDateFormat = "export:invalid_date_format"
	CodeInvalidDateRange  = "export:invalid_date_range"

	// Downstream processing
	CodeFetchFailed = "export:fetch_failed"
	CodeWriteFailed = "export:write_failed"
)

// registeredErrors defines all error codes with their default messages and HTTP status
var registeredErrors = []ErrorCode{
	{Code: CodeInvalidRequest, Message: "Invalid request", HTTPStatus: http.StatusBadRequest},
	{Code: CodeNotFound, Message: "Resource not found", HTTPStatus: http.StatusNotFound},
	{Code: CodeInternalError, Message: "Internal server error", HTTPStatus: http.StatusInternalServerError},

	{Code: CodeInvalidDateFormat, Message: "Dates must be in YYYY-MM-DD format", HTTPStatus: http.StatusBadRequest},
	{Code: CodeInvalidDateRange, Message: "start_date must be before or equal to end_date", HTTPStatus: http.StatusBadRequest},

	{Code: CodeFetchFailed, Message: "Fetching tickets from the remote API failed", HTTPStatus: http.StatusInternalServerError},
	{Code: CodeWriteFailed, Message: "Writing the export file failed", HTTPStatus: http.StatusInternalServerError},
}

func init() {
	// Register all error codes
	for _, e := range registeredErrors {
		Registry.Register(e)
	}
}
