// Package main provides the entry point for the careermap CLI.
//
// careermap crawls the SEEK career advice pages to map each theme or
// industry to the job ids listed under it, and can then feed that mapping
// to the GraphQL API one category at a time.
//
// Usage:
//
//	careermap crawl theme
//	careermap fetch theme
//	careermap history --mode theme --diff
//
// See --help for all available options.
package main

func main() {
	Execute()
}
