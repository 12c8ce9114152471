package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nao1215/careermap/internal/model"
)

// Fetcher retrieves a page and parses it into a Document.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*Document, error)
}

// HTTPFetcher is a Fetcher backed by a resty client.
// Every call issues a fresh GET; nothing is cached and nothing is retried.
type HTTPFetcher struct {
	// client is the underlying HTTP client.
	client *resty.Client

	// maxBodySize limits the size of response bodies accepted.
	maxBodySize int64

	// logger for structured logging.
	logger *slog.Logger
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client.SetTimeout(d)
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
// An empty value keeps the client default.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.client.SetHeader("User-Agent", ua)
		}
	}
}

// WithMaxBodySize sets the maximum accepted response body size in bytes.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *HTTPFetcher) {
		f.maxBodySize = size
	}
}

// WithFetcherLogger sets a custom logger for the fetcher.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *HTTPFetcher) {
		f.logger = logger
	}
}

// WithRestyClient replaces the underlying resty client.
// Options applied after this one configure the given client, so a client
// shared between fetchers shares their timeout and User-Agent. No hooks are
// registered on it.
func WithRestyClient(client *resty.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client = client
	}
}

// NewHTTPFetcher creates a new HTTPFetcher.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:      resty.New(),
		maxBodySize: model.MaxPageSize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch issues a GET request for pageURL and parses the body as HTML.
// Any failure to obtain a 2xx response is returned as a *TransportError.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*Document, error) {
	res, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		Get(pageURL)
	if err != nil {
		return nil, &TransportError{URL: pageURL, Err: err}
	}
	f.logger.Debug("page fetched",
		"url", pageURL,
		"status", res.StatusCode(),
		"bytes", len(res.Body()),
		"elapsed", res.Time(),
	)
	if !res.IsSuccess() {
		return nil, &TransportError{URL: pageURL, StatusCode: res.StatusCode()}
	}

	body := res.Body()
	if f.maxBodySize > 0 && int64(len(body)) > f.maxBodySize {
		return nil, &TransportError{
			URL:        pageURL,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("response body of %d bytes exceeds limit of %d bytes", len(body), f.maxBodySize),
		}
	}

	page := model.Page{
		URL:         pageURL,
		StatusCode:  res.StatusCode(),
		ContentType: res.Header().Get("Content-Type"),
		FetchedAt:   res.ReceivedAt(),
		Raw:         body,
	}
	page.ComputeHash()

	return NewDocument(page)
}
