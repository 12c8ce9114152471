// Package model defines the core data structures used throughout careermap.
//
// This package contains the following main types:
//   - Mode: the crawl context, either theme or industry
//   - Category: a theme or industry grouping scraped from the root page
//   - Mapping: an insertion-ordered mapping from category title to job ids
//   - Page: a fetched page with its content fingerprint
//   - CrawlReport: the record of a single crawl run
//   - Summary and MappingDiff: derived views used by the report writers
//
// The models are serializable to JSON for export and database storage.
package model
