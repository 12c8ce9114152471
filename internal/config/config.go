package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/careermap/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "careermap"

	// DefaultRootURL is the career advice listing page that links to every
	// theme and industry.
	DefaultRootURL = "https://www.seek.com.au/career-advice/explore-careers"

	// DefaultBaseOrigin is the origin relative category links are joined to.
	DefaultBaseOrigin = "https://www.seek.com.au"

	// DefaultOutputDir is the directory export files are written under.
	DefaultOutputDir = "data"

	// DefaultDelay is the pause after each category request.
	DefaultDelay = 5 * time.Second

	// DefaultTimeout is the timeout of a single page request.
	DefaultTimeout = 30 * time.Second

	// DefaultAPITimeout is the timeout of a single API request.
	DefaultAPITimeout = 60 * time.Second

	// DefaultUserAgent identifies careermap in HTTP requests.
	DefaultUserAgent = "careermap/1.0 (+https://github.com/nao1215/careermap)"

	// DefaultMaxBodySize limits the response body size accepted from the site.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB
)

// Config holds all configuration options for careermap.
// It is populated from defaults, the config file, the environment and CLI
// flags, and passed down explicitly rather than kept in global state.
type Config struct {
	// RootURL is the listing page categories are read from.
	RootURL string

	// BaseOrigin is joined to relative category hrefs.
	BaseOrigin string

	// OutputDir is where <themes|industries>.json and the API results go.
	OutputDir string

	// Delay is the fixed pause after each category request.
	// Ignored when RateLimit is set.
	Delay time.Duration

	// RateLimit, when positive, paces requests with a token bucket of this
	// many requests per second instead of the fixed Delay.
	RateLimit float64

	// Timeout is the timeout of each page request.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent to the site.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes.
	MaxBodySize int64

	// Strict makes a root page without any category card an error.
	Strict bool

	// PrettyJSON indents the exported mapping.
	PrettyJSON bool

	// Verbose enables debug logging.
	Verbose bool

	// JSONLog switches log output to JSON lines.
	JSONLog bool

	// NoProgress disables the progress spinner.
	NoProgress bool

	// ConfigFilePath is the configuration file given with --config.
	// If empty, the tool searches for .careermap in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// DBDir is the directory of the run history database.
	// Defaults to XDG data directory (~/.local/share/careermap on Linux).
	DBDir string

	// SaveToDB records each crawl run in the history database.
	SaveToDB bool

	// API configures the GraphQL stage.
	API APIConfig
}

// APIConfig configures the GraphQL API stage.
type APIConfig struct {
	// Endpoint is the GraphQL endpoint URL.
	Endpoint string

	// PayloadFile is the path of the JSON5 request template.
	// Its variables.aliases field is replaced with each category's job ids.
	PayloadFile string

	// Headers are sent with every API request (e.g. authorization, cookies).
	Headers map[string]string

	// Timeout is the timeout of each API request.
	Timeout time.Duration
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		RootURL:     DefaultRootURL,
		BaseOrigin:  DefaultBaseOrigin,
		OutputDir:   DefaultOutputDir,
		Delay:       DefaultDelay,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
		API: APIConfig{
			Headers: make(map[string]string),
			Timeout: DefaultAPITimeout,
		},
	}
}

// XDGDataDir returns the XDG data directory for careermap.
// On Linux: ~/.local/share/careermap
// On macOS: ~/Library/Application Support/careermap
// On Windows: %LOCALAPPDATA%\careermap
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for careermap.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// OutputPath returns the export file of mode, e.g. data/themes.json.
func (c *Config) OutputPath(mode model.Mode) string {
	return filepath.Join(c.OutputDir, mode.OutputName()+".json")
}

// APIOutputDir returns the directory the API results of mode are written to,
// e.g. data/themes.
func (c *Config) APIOutputDir(mode model.Mode) string {
	return filepath.Join(c.OutputDir, mode.OutputName())
}

// Validate checks if the crawl configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if !isHTTPURL(c.RootURL) {
		return ErrInvalidRootURL
	}

	if !isHTTPURL(c.BaseOrigin) {
		return ErrInvalidBaseOrigin
	}

	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	if c.Delay < 0 {
		return ErrInvalidDelay
	}

	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}

// ValidateAPI checks the settings required by the API stage.
func (c *Config) ValidateAPI() error {
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	if c.API.Endpoint == "" {
		return ErrNoAPIEndpoint
	}

	if c.API.PayloadFile == "" {
		return ErrNoPayloadFile
	}

	if c.API.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Delay < 0 {
		return ErrInvalidDelay
	}

	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}

	return nil
}

// isHTTPURL reports whether s is an absolute http or https URL with a host.
func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
