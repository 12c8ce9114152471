// Package pipeline runs a careermap crawl as a sequence of steps.
//
// A crawl is three steps over one CrawlReport: fetch the root listing page,
// extract the categories of the mode, then visit every category page in
// order to collect its job ids. The first failing step stops the run.
//
// Finalizers run after the steps whatever happened, including context
// cancellation: the mapping collected so far is exported and the run is
// recorded in the history database. A finalizer error is joined to the
// crawl error, never substituted for it.
//
// APIFetchRunner drives the second stage: it feeds each category's job ids
// to the GraphQL client and stores the responses.
package pipeline
