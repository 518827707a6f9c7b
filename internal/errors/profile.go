package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

// ProfileError represents a Steam profile access error (private profile, invalid key, etc.)
type ProfileError struct {
	Message    string
	StatusCode int
	APIMessage string // Error message from Steam API if available
}

func (e *ProfileError) Error() string {
	if e.APIMessage != "" {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Message, e.StatusCode, e.APIMessage)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// NewProfileError creates a new profile access error
func NewProfileError(statusCode int, apiMessage string) *ProfileError {
	var message string
	apiLower := strings.ToLower(apiMessage)

	switch statusCode {
	case 403:
		if strings.Contains(apiLower, "private") {
			message = "Steam profile is private or inaccessible"
		} else {
			message = "Access forbidden - check API key and profile settings"
		}
	case 401:
		message = "Invalid Steam API key"
	default:
		message = "Steam API access error"
	}

	return &ProfileError{
		Message:    message,
		StatusCode: statusCode,
		APIMessage: apiMessage,
	}
}

// IsProfileError checks if error is a ProfileError
func IsProfileError(err error) bool {
	var profileErr *ProfileError
	return stdErrors.As(err, &profileErr)
}
