package graphql

import (
	"fmt"
	"maps"
	"os"

	"github.com/titanous/json5"
)

// Payload is a GraphQL request body such as
//
//	{operationName: "...", query: "...", variables: {aliases: [], ...}}
//
// Keys other than variables.aliases are sent as written.
type Payload map[string]any

// aliasesKey is the variables field that receives the job ids.
const aliasesKey = "aliases"

// LoadPayload reads a JSON5 request template from path.
func LoadPayload(path string) (Payload, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read payload template: %w", err)
	}
	return ParsePayload(data)
}

// ParsePayload parses a JSON5 request template.
func ParsePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json5.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: template is empty", ErrInvalidPayload)
	}
	if v, ok := p["variables"]; ok && v != nil {
		if _, isObject := v.(map[string]any); !isObject {
			return nil, fmt.Errorf("%w: variables must be an object", ErrInvalidPayload)
		}
	}
	return p, nil
}

// WithAliases returns a copy of p whose variables.aliases is ids.
// p itself is not modified, so one template serves every category.
func (p Payload) WithAliases(ids []string) Payload {
	out := maps.Clone(p)
	if out == nil {
		out = Payload{}
	}

	variables, _ := out["variables"].(map[string]any)
	variables = maps.Clone(variables)
	if variables == nil {
		variables = make(map[string]any)
	}

	aliases := make([]string, len(ids))
	copy(aliases, ids)
	variables[aliasesKey] = aliases
	out["variables"] = variables

	return out
}

// OperationName returns the template's operationName, or "" if absent.
func (p Payload) OperationName() string {
	name, _ := p["operationName"].(string)
	return name
}
