// Package graphql drives the career API stage.
//
// A request template (operation name, query, variables) is loaded from a
// JSON5 file the user keeps outside of the repository. For every category the
// template's variables.aliases field is replaced with the category's job ids
// and the result is POSTed to the configured endpoint. The response body is
// returned untouched; there is no schema validation.
package graphql
