package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"
)

// Environment variables read by ApplyEnv.
const (
	EnvRootURL        = "CAREERMAP_ROOT_URL"
	EnvBaseOrigin     = "CAREERMAP_BASE_ORIGIN"
	EnvOutputDir      = "CAREERMAP_OUTPUT_DIR"
	EnvUserAgent      = "CAREERMAP_USER_AGENT"
	EnvDelay          = "CAREERMAP_DELAY"
	EnvRateLimit      = "CAREERMAP_RATE_LIMIT"
	EnvDBDir          = "CAREERMAP_DB_DIR"
	EnvAPIEndpoint    = "CAREERMAP_API_ENDPOINT"
	EnvAPIPayloadFile = "CAREERMAP_API_PAYLOAD_FILE"
	EnvAPIHeaders     = "CAREERMAP_API_HEADERS"
	EnvAPITimeout     = "CAREERMAP_API_TIMEOUT"
)

// DefaultDotEnvFile is the .env file loaded when no path is given.
const DefaultDotEnvFile = ".env"

const (
	envHeadersExample  = `{"authorization": "Bearer ..."}`
	envDurationExample = "5s"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultDotEnvFile}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overlays CAREERMAP_* variables onto cfg.
// lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var overlay Config

	overlay.RootURL, _ = lookup(EnvRootURL)
	overlay.BaseOrigin, _ = lookup(EnvBaseOrigin)
	overlay.OutputDir, _ = lookup(EnvOutputDir)
	overlay.UserAgent, _ = lookup(EnvUserAgent)
	overlay.DBDir, _ = lookup(EnvDBDir)
	overlay.API.Endpoint, _ = lookup(EnvAPIEndpoint)
	overlay.API.PayloadFile, _ = lookup(EnvAPIPayloadFile)

	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRateLimit, v, err)
		}
		overlay.RateLimit = r
	}

	if v, ok := lookup(EnvAPITimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q (e.g. %s): %w", EnvAPITimeout, v, envDurationExample, err)
		}
		overlay.API.Timeout = d
	}

	if v, ok := lookup(EnvAPIHeaders); ok && v != "" {
		headers := make(map[string]string)
		if err := json5.Unmarshal([]byte(v), &headers); err != nil {
			return fmt.Errorf("invalid %s (expected an object like %s): %w", EnvAPIHeaders, envHeadersExample, err)
		}
		overlay.API.Headers = headers
	}

	if err := mergo.Merge(c, overlay, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to apply environment: %w", err)
	}

	// A delay of 0 is meaningful, so it is applied outside the merge.
	if v, ok := lookup(EnvDelay); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q (e.g. %s): %w", EnvDelay, v, envDurationExample, err)
		}
		c.Delay = d
	}

	return nil
}
