package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/petrel-ai/petrel/builders"
)

// ParseArgs decodes a tool call's arguments into a typed struct. Unknown
// fields are rejected so schema drift surfaces as an error instead of
// silently dropped data.
func ParseArgs[T any](call builders.ToolCall) (*T, error) {
	var out T
	dec := json.NewDecoder(strings.NewReader(call.Function.Arguments))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("parsing arguments for %s: %w", call.Function.Name, err)
	}
	return &out, nil
}

// Result serializes a tool's return value for the tool message content.
func Result(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encoding tool result: %w", err)
	}
	return string(data), nil
}
