package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidQuantity     = NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrProductNotFound     = NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	ErrLocationNotFound    = NewDomainError("LOCATION_NOT_FOUND", "Location not found")
	ErrLocationInUse       = NewDomainError("LOCATION_IN_USE", "Location is in use by products")
	ErrSameLocation        = NewDomainError("SAME_LOCATION", "Source and destination locations are the same")
	ErrBundleNotFound      = NewDomainError("BUNDLE_NOT_FOUND", "Bundle not found")
	ErrNotABundle          = NewDomainError("NOT_A_BUNDLE", "Product is not a bundle")
	ErrMappingNotFound     = NewDomainError("MAPPING_NOT_FOUND", "Product mapping not found")
	ErrStorageFault        = NewDomainError("STORAGE_FAULT", "Storage operation failed")
)
