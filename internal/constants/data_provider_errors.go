package constants

// Data Provider Error Codes
// These constants define specific error scenarios for the flight data source

const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeNetworkError    = "NETWORK_ERROR"
	ErrCodeValidationError = "VALIDATION_ERROR"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeInvalidAPIKey   = "INVALID_API_KEY"
)

// Error Messages
// Human-readable messages corresponding to error codes

var DataProviderErrorMessages = map[string]string{
	ErrCodeNotFound:        "The requested flight or airport could not be found",
	ErrCodeNetworkError:    "Unable to reach the flight data service. Please try again",
	ErrCodeValidationError: "The request was malformed",
	ErrCodeRateLimited:     "Rate limit exceeded. Please try again later",
	ErrCodeInvalidAPIKey:   "The flight data API key is invalid or missing",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := DataProviderErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}

// IsRetryable reports whether a failed one-shot load is worth a manual retry
func IsRetryable(code string) bool {
	switch code {
	case ErrCodeNetworkError, ErrCodeRateLimited:
		return true
	default:
		return false
	}
}
