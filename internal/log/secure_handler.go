package log

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// sensitiveKeys are attribute keys and header names whose values are never logged.
var sensitiveKeys = map[string]bool{
	// HTTP headers
	"authorization":       true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"x-auth-token":        true,
	"proxy-authorization": true,
	"x-seek-ec-sessionid": true,
	"x-seek-ec-visitorid": true,

	// Authentication
	"password":      true,
	"passwd":        true,
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"api-key":       true,
	"access_token":  true,
	"refresh_token": true,
	"id_token":      true,
	"secret_key":    true,

	// Session
	"session":    true,
	"session_id": true,
	"sessionid":  true,
	"sid":        true,

	// Credentials
	"credential":  true,
	"credentials": true,
	"auth":        true,
}

// sensitiveKeywords mark a key as sensitive when contained anywhere in it.
// The bare word "key" is left out: it matches too much (primary_key, cache_key).
var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token", "auth",
	"credential", "cookie", "session",
}

// sensitivePatterns match values that look like credentials whatever their key.
var sensitivePatterns = []*regexp.Regexp{
	// JWT
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
	// Bearer
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	// Basic auth
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
	// Opaque API keys
	regexp.MustCompile(`^[a-zA-Z0-9]{32,}$`),
	// AWS access keys
	regexp.MustCompile(`^AKIA[0-9A-Z]{16}$`),
	// PEM private keys
	regexp.MustCompile(`(?i)-----BEGIN.*(PRIVATE|SECRET).*KEY-----`),
}

// publicKeys carry crawl data whose values are never matched against
// sensitivePatterns. A SHA3 page hash would otherwise pass for an opaque key.
var publicKeys = map[string]bool{
	"hash":     true,
	"url":      true,
	"path":     true,
	"title":    true,
	"category": true,
	"run":      true,
}

// MaskValue replaces sensitive values.
const MaskValue = "***REDACTED***"

// SecureHandler is an slog.Handler that masks sensitive attributes and
// forwards the record to the wrapped handler.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler wraps handler. A nil handler means slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled delegates to the wrapped handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs masks attrs before attaching them.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(masked)}
}

// WithGroup delegates to the wrapped handler.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

func sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]slog.Attr, len(group))
		for i, ga := range group {
			masked[i] = sanitizeAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString && !publicKeys[strings.ToLower(a.Key)] && isSensitiveValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	return sensitiveKeys[key] || containsSensitiveKeyword(key)
}

func containsSensitiveKeyword(key string) bool {
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// SanitizeHeaders returns a copy of headers with sensitive values masked.
// Use it before logging request headers as a single attribute.
func SanitizeHeaders(headers map[string]string) map[string]string {
	out := maps.Clone(headers)
	for k, v := range out {
		if isSensitiveKey(k) || isSensitiveValue(v) {
			out[k] = MaskValue
		}
	}
	return out
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewSecureLogger returns a logger writing human readable lines to w.
// verbose selects Debug level; otherwise only warnings and errors are shown.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(levelFor(verbose)),
		ReportTimestamp: true,
		Prefix:          "careermap",
	})
	return slog.New(NewSecureHandler(handler))
}

// NewSecureJSONLogger returns a logger writing JSON lines to w.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})
	return slog.New(NewSecureHandler(handler))
}
