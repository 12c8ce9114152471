package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and Config.ValidateAPI()
// so callers can use errors.Is() for programmatic handling.
var (
	// ErrInvalidRootURL is returned when the root URL is not an absolute http(s) URL.
	ErrInvalidRootURL = errors.New("invalid root URL: must be an absolute http or https URL")

	// ErrInvalidBaseOrigin is returned when the base origin is not an absolute http(s) URL.
	ErrInvalidBaseOrigin = errors.New("invalid base origin: must be an absolute http or https URL")

	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrInvalidDelay is returned when the delay between requests is negative.
	// Use 0 for no delay.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidRateLimit is returned when the rate limit is negative.
	// Use 0 to pace with the fixed delay instead.
	ErrInvalidRateLimit = errors.New("invalid rate limit: must be non-negative")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrNoAPIEndpoint is returned when the API stage runs without an endpoint.
	ErrNoAPIEndpoint = errors.New("no API endpoint configured: set api.endpoint or CAREERMAP_API_ENDPOINT")

	// ErrNoPayloadFile is returned when the API stage runs without a payload template.
	ErrNoPayloadFile = errors.New("no API payload template configured: set api.payloadFile or CAREERMAP_API_PAYLOAD_FILE")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
