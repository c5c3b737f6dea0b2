package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeStorageInit      = "STORAGE_INIT"
	ErrCodeStorageRead      = "STORAGE_READ"
	ErrCodeStorageWrite     = "STORAGE_WRITE"
	ErrCodeValidation       = "VALIDATION"
	ErrCodeDuplicateCode    = "DUPLICATE_CODE"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	ErrCodeInvalidCreds     = "INVALID_CREDENTIALS"
	ErrCodeEmailNotVerified = "EMAIL_NOT_VERIFIED"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error around an underlying cause,
// typically a storage I/O failure.
func WrapDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors
var (
	ErrDuplicateCode    = NewDomainError(ErrCodeDuplicateCode, "A product with this code already exists")
	ErrProductNotFound  = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrDuplicateEmail   = NewDomainError(ErrCodeDuplicateEmail, "Email is already registered")
	ErrUserNotFound     = NewDomainError(ErrCodeNotFound, "User not found")
	ErrInvalidCreds     = NewDomainError(ErrCodeInvalidCreds, "Invalid email or password")
	ErrEmailNotVerified = NewDomainError(ErrCodeEmailNotVerified, "Email address has not been verified")
)
