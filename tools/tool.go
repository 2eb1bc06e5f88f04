// Package tools provides a registry and execution pipeline for function
// tools used with chat and assistant requests. Tools declare a JSON Schema
// for their arguments; the registry dispatches model-issued tool calls to
// the matching implementation.
package tools

import (
	"context"
	"encoding/json"
)

// Tool is a capability the model can invoke through a tool call.
type Tool interface {
	// Name is the function name sent to the API. It must contain only
	// letters, digits, and underscores.
	Name() string
	// Description tells the model when to use the tool.
	Description() string
	// Schema describes the argument object as JSON Schema.
	Schema() json.RawMessage
	// Call executes the tool with raw JSON arguments and returns a result
	// serialized for the tool message.
	Call(ctx context.Context, args json.RawMessage) (string, error)
}

// Func adapts a plain function into a Tool.
type Func struct {
	ToolName        string
	ToolDescription string
	ToolSchema      json.RawMessage
	Fn              func(ctx context.Context, args json.RawMessage) (string, error)
}

func (f Func) Name() string             { return f.ToolName }
func (f Func) Description() string      { return f.ToolDescription }
func (f Func) Schema() json.RawMessage  { return f.ToolSchema }
func (f Func) Call(ctx context.Context, args json.RawMessage) (string, error) {
	return f.Fn(ctx, args)
}

var _ Tool = Func{}
