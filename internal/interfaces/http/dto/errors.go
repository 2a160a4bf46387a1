package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry these codes
// verbatim; the transport layer only decides the HTTP status.
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeUnauthenticated    = "UNAUTHENTICATED"
	ErrCodeProfileMissing     = "PROFILE_MISSING"
	ErrCodeAccessDenied       = "ACCESS_DENIED"
	ErrCodeConflictingState   = "CONFLICTING_STATE"
	ErrCodeExternalFailure    = "EXTERNAL_FAILURE"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	ErrCodeAccountPending     = "ACCOUNT_PENDING"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes. Validation
// codes are not listed individually: every INVALID_* code falls through
// to 400 in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeAlreadyExists:      http.StatusConflict,
	ErrCodeConflictingState:   http.StatusConflict,
	ErrCodeUnauthenticated:    http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeProfileMissing:     http.StatusForbidden,
	ErrCodeAccessDenied:       http.StatusForbidden,
	ErrCodeAccountDeactivated: http.StatusForbidden,
	ErrCodeAccountPending:     http.StatusForbidden,
	ErrCodeExternalFailure:    http.StatusBadGateway,
	ErrCodeInternalError:      http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 so that an unmapped error is visible as a
// server fault rather than silently blamed on the client.
func GetHTTPStatus(errorCode string) int {
	if status, ok := errorCodeHTTPStatus[errorCode]; ok {
		return status
	}
	if isValidationCode(errorCode) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// isValidationCode reports whether the code belongs to the INVALID_*
// family produced by domain constructors and setters
func isValidationCode(code string) bool {
	const prefix = "INVALID_"
	return len(code) > len(prefix) && code[:len(prefix)] == prefix
}
