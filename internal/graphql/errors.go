package graphql

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPayload is returned when the template is not a JSON object or
	// its variables field is not an object.
	ErrInvalidPayload = errors.New("invalid API payload template")

	// ErrNoEndpoint is returned when the client has no endpoint URL.
	ErrNoEndpoint = errors.New("API endpoint is required")
)

// maxErrorBody bounds the response excerpt kept in an APIError.
const maxErrorBody = 512

// APIError reports a failed API request: a non-2xx status or a body that is
// not JSON. Transport failures are wrapped in Err.
type APIError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("API request to %s failed: %v", e.URL, e.Err)
	case e.StatusCode >= 200 && e.StatusCode < 300:
		return fmt.Sprintf("API response from %s is not JSON: %s", e.URL, e.Body)
	default:
		return fmt.Sprintf("API request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
	}
}

// Unwrap returns the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

func excerpt(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
