package dto

import "net/http"

// API error codes returned in the error envelope. The domain layer raises
// errors with its own code vocabulary (PRODUCT_NOT_FOUND, SAME_LOCATION,
// ...); NormalizeErrorCode collapses those onto this ERR_ set so clients
// only ever see one scheme.

const (
	ErrCodeInternal   = "ERR_INTERNAL"
	ErrCodeValidation = "ERR_VALIDATION"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	// Business rule violations: the request was well-formed but the
	// operation is not allowed against current inventory state.
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"

	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"

	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps each API error code to its HTTP status.
// Malformed or invalid input is 400, missing resources 404, duplicates and
// concurrent edits 409, and business rule violations 422.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status for an API error code, or 500 for
// codes it does not know.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodes maps domain error codes to API error codes. Every code
// the domain layer can raise must appear here, otherwise HandleError falls
// back to 500 for it.
var domainErrorCodes = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"PRODUCT_NOT_FOUND":  ErrCodeNotFound,
	"LOCATION_NOT_FOUND": ErrCodeNotFound,
	"BUNDLE_NOT_FOUND":   ErrCodeNotFound,
	"MAPPING_NOT_FOUND":  ErrCodeNotFound,

	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"LOCATION_IN_USE":      ErrCodeConflict,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,

	"INVALID_INPUT":    ErrCodeInvalidInput,
	"INVALID_QUANTITY": ErrCodeInvalidInput,
	"SAME_LOCATION":    ErrCodeInvalidInput,
	"INVALID_PLATFORM": ErrCodeInvalidInput,

	"INVALID_STATE": ErrCodeInvalidState,
	"NOT_A_BUNDLE":  ErrCodeInvalidState,

	"INSUFFICIENT_STOCK": ErrCodeInsufficientStock,

	"STORAGE_FAULT": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its API error code.
// Codes already in the API scheme, and unknown codes, pass through as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodes[code]; ok {
		return apiCode
	}
	return code
}
