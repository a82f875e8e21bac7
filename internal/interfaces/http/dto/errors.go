package dto

import (
	"net/http"
	"strings"
)

// General error codes used by the HTTP layer itself
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// domainErrorHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the map fall through to the prefix rules in GetHTTPStatus.
var domainErrorHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	// Missing resources
	"NOT_FOUND":          http.StatusNotFound,
	"HOSTEL_NOT_FOUND":   http.StatusNotFound,
	"ROOM_NOT_FOUND":     http.StatusNotFound,
	"TENANT_NOT_FOUND":   http.StatusNotFound,
	"TENANCY_NOT_FOUND":  http.StatusNotFound,
	"CATEGORY_NOT_FOUND": http.StatusNotFound,
	"PAYMENT_NOT_FOUND":  http.StatusNotFound,
	"DUE_NOT_FOUND":      http.StatusNotFound,

	// Conflicting state
	"ALREADY_EXISTS":        http.StatusConflict,
	"ACTIVE_TENANCY_EXISTS": http.StatusConflict,
	"ROOM_FULL":             http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,

	// Business rule violations
	"EXCEEDS_OUTSTANDING": http.StatusUnprocessableEntity,
	"EXCEEDS_PAYMENT":     http.StatusUnprocessableEntity,
	"INVALID_STATE":       http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unmapped INVALID_* codes are client input problems; anything else unknown
// is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
