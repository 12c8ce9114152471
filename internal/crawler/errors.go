package crawler

import "fmt"

// TransportError is returned when a page cannot be fetched: DNS, connection
// and timeout failures as well as non-2xx responses.
type TransportError struct {
	// URL is the page that was requested.
	URL string

	// StatusCode is the HTTP status of the response, or 0 if no response
	// was received.
	StatusCode int

	// Err is the underlying network error, if any.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ExtractionError is returned when the expected markup is absent from a page.
// It usually means the site changed its structure.
type ExtractionError struct {
	// URL is the page the extraction ran on. It may be empty for documents
	// that were not fetched over the network.
	URL string

	// Selector is the CSS selector that failed to match.
	Selector string

	// Message describes the failure.
	Message string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return e.Message
}
