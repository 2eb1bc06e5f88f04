package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/petrel-ai/petrel/builders"
)

var (
	// ErrDuplicateTool is returned when registering a name twice.
	ErrDuplicateTool = errors.New("tool already registered")
	// ErrToolNotFound is returned when executing an unknown tool.
	ErrToolNotFound = errors.New("tool not found")
)

// Registry holds named tools and dispatches tool calls to them. It is safe
// for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	tools      map[string]Tool
	middleware []Middleware
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: map[string]Tool{}}
}

// Use appends middleware applied to every Execute call, outermost first.
func (r *Registry) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw...)
}

// Register adds a tool. Registering the same name twice fails.
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, name)
	}
	r.tools[name] = tool
	return nil
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns registered tool names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions renders every registered tool as a request tool definition,
// ready to pass to a chat builder.
func (r *Registry) Definitions() []builders.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]builders.Tool, 0, len(r.tools))
	for _, name := range r.listLocked() {
		tool := r.tools[name]
		defs = append(defs, builders.ToolFunction(tool.Name(), tool.Description(), tool.Schema()))
	}
	return defs
}

func (r *Registry) listLocked() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute dispatches a model-issued tool call through the middleware chain
// to the registered tool.
func (r *Registry) Execute(ctx context.Context, call builders.ToolCall) (string, error) {
	r.mu.RLock()
	tool, ok := r.tools[call.Function.Name]
	mw := make([]Middleware, len(r.middleware))
	copy(mw, r.middleware)
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, call.Function.Name)
	}

	ctx = withCallInfo(ctx, CallInfo{ToolName: call.Function.Name, CallID: call.ID})
	invoke := func(ctx context.Context, args json.RawMessage) (string, error) {
		return tool.Call(ctx, args)
	}
	return Chain(invoke, mw...)(ctx, json.RawMessage(call.Function.Arguments))
}
