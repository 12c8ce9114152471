// Package log provides the careermap loggers: slog loggers whose handler
// masks credentials before anything reaches the output.
//
// The API stage sends user supplied headers (authorization, cookies) and the
// fetcher logs request details in verbose mode. SecureHandler sits between
// slog and the real handler and replaces sensitive attribute values with
// MaskValue, both by key name and by value shape (JWT, Bearer and Basic
// credentials, long opaque tokens).
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("api request", "url", endpoint, "authorization", token)
//	// authorization=***REDACTED***
//
// NewSecureLogger renders human readable lines through charmbracelet/log;
// NewSecureJSONLogger writes one JSON object per line for log collectors.
package log
