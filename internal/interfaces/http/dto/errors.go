package dto

import (
	"net/http"
	"strings"
)

// Codes produced by the HTTP layer itself. Domain codes pass through unchanged.
const (
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeInvalidID        = "INVALID_ID"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeIdempotencyInUse = "IDEMPOTENCY_KEY_IN_USE"
	ErrCodeUnavailable      = "SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus pins codes whose status does not follow the naming rules in GetHTTPStatus
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeForbidden:        http.StatusForbidden,
	ErrCodeConflict:         http.StatusConflict,
	ErrCodeRateLimited:      http.StatusTooManyRequests,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeIdempotencyInUse: http.StatusConflict,
	ErrCodeUnavailable:      http.StatusServiceUnavailable,

	"INVALID_CREDENTIALS":     http.StatusUnauthorized,
	"ACCOUNT_LOCKED":          http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":        http.StatusUnauthorized,
	"ALREADY_EXISTS":          http.StatusConflict,
	"CONCURRENCY_CONFLICT":    http.StatusConflict,
	"INVALID_STATE":           http.StatusUnprocessableEntity,
	"UNBALANCED_ENTRY":        http.StatusUnprocessableEntity,
	"NO_LINES":                http.StatusUnprocessableEntity,
	"ACCOUNT_TYPE_MISMATCH":   http.StatusUnprocessableEntity,
	"INVALID_PARENT_ACCOUNT":  http.StatusUnprocessableEntity,
	"BUSINESS_RULE_VIOLATION": http.StatusUnprocessableEntity,
	"ADMIN_ALREADY_EXISTS":    http.StatusUnprocessableEntity,
	"ROLES_NOT_SEEDED":        http.StatusUnprocessableEntity,
	"SYSTEM_ROLE":             http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":          http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":        http.StatusUnprocessableEntity,
	"NOT_LOCKED":              http.StatusUnprocessableEntity,
	"ROLE_ALREADY_ASSIGNED":   http.StatusUnprocessableEntity,
	"USER_INACTIVE":           http.StatusUnprocessableEntity,
	"EXPORT_ARCHIVE_DISABLED": http.StatusServiceUnavailable,

	// reported against the child account
	"PARENT_ACCOUNT_NOT_FOUND": http.StatusUnprocessableEntity,

	// contacts
	"ROLE_NOT_ALLOWED":         http.StatusUnprocessableEntity,
	"CONTACT_HAS_TRANSACTIONS": http.StatusUnprocessableEntity,
}

// GetHTTPStatus maps an error code to its HTTP status.
// Explicit entries win; otherwise the code's shape decides and unknown codes are 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "TOKEN_"):
		return http.StatusUnauthorized
	case code == ErrCodeNotFound || strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "DUPLICATE_"):
		return http.StatusConflict
	case strings.HasSuffix(code, "_IN_USE"):
		return http.StatusUnprocessableEntity
	case strings.HasPrefix(code, "INVALID_"), code == ErrCodeValidation, code == ErrCodeBadRequest:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
