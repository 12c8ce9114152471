// Package crawler fetches career-site pages and extracts categories and job
// identifiers from them.
//
// # Components
//
//   - Fetcher: issues GET requests and parses responses into Documents
//   - Document: a parsed HTML page queryable with CSS selectors
//   - Extractor: reads category cards and role cards out of Documents
//   - Pacer: pauses between requests (fixed delay or token bucket)
//
// # Errors
//
// Network and HTTP status failures are reported as *TransportError.
// Missing or malformed markup is reported as *ExtractionError. Neither is
// retried; callers decide whether to abort.
//
// # Usage
//
//	fetcher := crawler.NewHTTPFetcher(crawler.WithTimeout(30 * time.Second))
//	doc, err := fetcher.Fetch(ctx, "https://www.seek.com.au/career-advice/explore-careers")
//	categories, err := crawler.NewExtractor().ExtractCategories(doc, model.ModeTheme)
package crawler
