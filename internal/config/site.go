package config

import (
	"fmt"
	"time"

	"dario.cat/mergo"
)

// SiteConfig describes the career site being crawled.
type SiteConfig struct {
	// RootURL is the listing page categories are read from.
	RootURL string `yaml:"rootURL,omitempty"`

	// BaseOrigin is joined to relative category hrefs.
	BaseOrigin string `yaml:"baseOrigin,omitempty"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Timeout overrides the per-request timeout (e.g. "30s").
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// CrawlConfig holds crawl behaviour settings.
type CrawlConfig struct {
	// OutputDir is where export files are written.
	OutputDir string `yaml:"outputDir,omitempty"`

	// Delay is the pause after each category (e.g. "5s").
	// A pointer so that an explicit "0s" can disable the pause.
	Delay *time.Duration `yaml:"delay,omitempty"`

	// RateLimit paces requests in requests per second instead of Delay.
	RateLimit float64 `yaml:"rateLimit,omitempty"`

	// Strict fails the crawl when the root page has no category card.
	Strict bool `yaml:"strict,omitempty"`

	// Pretty indents exported JSON.
	Pretty bool `yaml:"pretty,omitempty"`

	// DBDir overrides the history database directory.
	DBDir string `yaml:"dbDir,omitempty"`
}

// APIFileConfig holds the API stage settings of the configuration file.
type APIFileConfig struct {
	// Endpoint is the GraphQL endpoint URL.
	Endpoint string `yaml:"endpoint,omitempty"`

	// PayloadFile is the path of the JSON5 request template.
	PayloadFile string `yaml:"payloadFile,omitempty"`

	// Headers are sent with every API request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// File represents the structure of the .careermap configuration file.
type File struct {
	Site  SiteConfig    `yaml:"site,omitempty"`
	Crawl CrawlConfig   `yaml:"crawl,omitempty"`
	API   APIFileConfig `yaml:"api,omitempty"`
}

// Apply overlays the settings present in the file onto cfg.
// Fields left empty in the file keep their current value in cfg.
func (cf *File) Apply(cfg *Config) error {
	overlay := Config{
		RootURL:    cf.Site.RootURL,
		BaseOrigin: cf.Site.BaseOrigin,
		UserAgent:  cf.Site.UserAgent,
		Timeout:    cf.Site.Timeout,
		OutputDir:  cf.Crawl.OutputDir,
		RateLimit:  cf.Crawl.RateLimit,
		Strict:     cf.Crawl.Strict,
		PrettyJSON: cf.Crawl.Pretty,
		DBDir:      cf.Crawl.DBDir,
		API: APIConfig{
			Endpoint:    cf.API.Endpoint,
			PayloadFile: cf.API.PayloadFile,
			Headers:     cf.API.Headers,
			Timeout:     cf.API.Timeout,
		},
	}

	if err := mergo.Merge(cfg, overlay, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to apply configuration file: %w", err)
	}

	if cf.Crawl.Delay != nil {
		cfg.Delay = *cf.Crawl.Delay
	}

	return nil
}
