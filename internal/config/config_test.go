package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/careermap/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default RootURL is the explore careers page", func(t *testing.T) {
		t.Parallel()
		if cfg.RootURL != "https://www.seek.com.au/career-advice/explore-careers" {
			t.Errorf("unexpected RootURL %q", cfg.RootURL)
		}
	})

	t.Run("default Delay is 5 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Delay != 5*time.Second {
			t.Errorf("expected Delay to be 5s, got %v", cfg.Delay)
		}
	})

	t.Run("default OutputDir is data", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputDir != "data" {
			t.Errorf("expected OutputDir to be 'data', got %q", cfg.OutputDir)
		}
	})

	t.Run("default RateLimit is disabled", func(t *testing.T) {
		t.Parallel()
		if cfg.RateLimit != 0 {
			t.Errorf("expected RateLimit to be 0, got %v", cfg.RateLimit)
		}
	})

	t.Run("history is saved to the XDG data directory", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to be true")
		}
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"relative root URL", func(c *Config) { c.RootURL = "/career-advice" }, ErrInvalidRootURL},
		{"non-http root URL", func(c *Config) { c.RootURL = "ftp://example.com" }, ErrInvalidRootURL},
		{"empty base origin", func(c *Config) { c.BaseOrigin = "" }, ErrInvalidBaseOrigin},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, ErrNoOutputDir},
		{"negative delay", func(c *Config) { c.Delay = -time.Second }, ErrInvalidDelay},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }, ErrInvalidRateLimit},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"negative max body size", func(c *Config) { c.MaxBodySize = -1 }, ErrInvalidMaxBodySize},
		{"zero delay is valid", func(c *Config) { c.Delay = 0 }, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.want == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

// TestConfigValidateAPI tests the API stage validation.
func TestConfigValidateAPI(t *testing.T) {
	t.Parallel()

	t.Run("missing endpoint", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.API.PayloadFile = "payload.json5"
		if err := cfg.ValidateAPI(); !errors.Is(err, ErrNoAPIEndpoint) {
			t.Errorf("expected ErrNoAPIEndpoint, got %v", err)
		}
	})

	t.Run("missing payload file", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.API.Endpoint = "https://example.com/graphql"
		if err := cfg.ValidateAPI(); !errors.Is(err, ErrNoPayloadFile) {
			t.Errorf("expected ErrNoPayloadFile, got %v", err)
		}
	})

	t.Run("complete API settings are valid", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.API.Endpoint = "https://example.com/graphql"
		cfg.API.PayloadFile = "payload.json5"
		if err := cfg.ValidateAPI(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestConfigPaths tests the output path helpers.
func TestConfigPaths(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.OutputDir = filepath.Join("out", "dir")

	if got := cfg.OutputPath(model.ModeTheme); got != filepath.Join("out", "dir", "themes.json") {
		t.Errorf("unexpected theme output path %q", got)
	}
	if got := cfg.OutputPath(model.ModeIndustry); got != filepath.Join("out", "dir", "industries.json") {
		t.Errorf("unexpected industry output path %q", got)
	}
	if got := cfg.APIOutputDir(model.ModeIndustry); got != filepath.Join("out", "dir", "industries") {
		t.Errorf("unexpected API output dir %q", got)
	}
}

// TestXDGDirs tests the XDG directory helpers.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(XDGDataDir(), AppName) {
		t.Errorf("expected data dir to end with %q, got %q", AppName, XDGDataDir())
	}
	if !strings.HasSuffix(XDGConfigDir(), AppName) {
		t.Errorf("expected config dir to end with %q, got %q", AppName, XDGConfigDir())
	}
}

// TestLoadConfigFile tests YAML loading and applying.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML returns error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("site: [unclosed"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("file settings override defaults", func(t *testing.T) {
		t.Parallel()

		content := `site:
  rootURL: http://127.0.0.1:9999/root
  userAgent: test-agent
crawl:
  outputDir: out
  delay: 0s
  strict: true
api:
  endpoint: https://example.com/graphql
  payloadFile: payload.json5
  headers:
    authorization: Bearer abc
`
		path := filepath.Join(t.TempDir(), ".careermap")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		if err := cf.Apply(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.RootURL != "http://127.0.0.1:9999/root" {
			t.Errorf("unexpected RootURL %q", cfg.RootURL)
		}
		if cfg.BaseOrigin != DefaultBaseOrigin {
			t.Errorf("expected BaseOrigin default to be kept, got %q", cfg.BaseOrigin)
		}
		if cfg.UserAgent != "test-agent" {
			t.Errorf("unexpected UserAgent %q", cfg.UserAgent)
		}
		if cfg.OutputDir != "out" {
			t.Errorf("unexpected OutputDir %q", cfg.OutputDir)
		}
		if cfg.Delay != 0 {
			t.Errorf("expected explicit 0s delay to apply, got %v", cfg.Delay)
		}
		if !cfg.Strict {
			t.Error("expected Strict to be true")
		}
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("expected Timeout default to be kept, got %v", cfg.Timeout)
		}
		if cfg.API.Endpoint != "https://example.com/graphql" {
			t.Errorf("unexpected API endpoint %q", cfg.API.Endpoint)
		}
		if cfg.API.Headers["authorization"] != "Bearer abc" {
			t.Errorf("unexpected API headers %v", cfg.API.Headers)
		}
		if cfg.API.Timeout != DefaultAPITimeout {
			t.Errorf("expected API timeout default to be kept, got %v", cfg.API.Timeout)
		}
	})

	t.Run("absent delay keeps the default", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := (&File{}).Apply(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Delay != DefaultDelay {
			t.Errorf("expected default delay, got %v", cfg.Delay)
		}
	})
}

// TestFindConfigFile tests explicit config path resolution.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()
		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})
}
