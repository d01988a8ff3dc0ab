package providers

import (
	"errors"
	"fmt"

	"flightwatch/internal/constants"
)

// ProviderError is the error type returned by every FlightDataProvider call
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports an unknown flight, airport or connection lookup
func NewNotFoundError(format string, args ...interface{}) *ProviderError {
	return &ProviderError{
		Code:    constants.ErrCodeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewValidationError reports malformed input rejected before any fetch
func NewValidationError(format string, args ...interface{}) *ProviderError {
	return &ProviderError{
		Code:    constants.ErrCodeValidationError,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewNetworkError wraps a transport failure
func NewNetworkError(err error, format string, args ...interface{}) *ProviderError {
	return &ProviderError{
		Code:    constants.ErrCodeNetworkError,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrorCode extracts the ProviderError code from err, or "" if err is not one
func ErrorCode(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	return ErrorCode(err) == constants.ErrCodeNotFound
}

func IsNetworkError(err error) bool {
	return ErrorCode(err) == constants.ErrCodeNetworkError
}

func IsValidation(err error) bool {
	return ErrorCode(err) == constants.ErrCodeValidationError
}
