// Package tools implements the handlers that execute parsed tool
// invocations against the workspace: reading files, writing whole files,
// and applying streamed SEARCH/REPLACE diffs.
package tools

import (
	"context"
	"sort"

	"github.com/restitch/restitch/internal/assistant"
)

// Params is a parsed tool use's parameter map, exactly as the message
// parser captured it.
type Params = map[assistant.ParamName]string

// Tool is the interface all tool handlers implement.
type Tool interface {
	// Name returns the tool identifier from the parser vocabulary.
	Name() assistant.ToolName

	// Description returns a human-readable description.
	Description() string

	// Check performs validation before execution. Returns an error if
	// the tool should not be executed.
	Check(ctx context.Context, params Params) error

	// Call executes the tool. Check should be called before Call.
	Call(ctx context.Context, params Params) (any, error)
}

// Registry manages enabled tools.
type Registry struct {
	tools map[assistant.ToolName]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[assistant.ToolName]Tool)}
}

// Enable adds a tool to the registry.
func (r *Registry) Enable(t Tool) {
	r.tools[t.Name()] = t
}

// Disable removes a tool from the registry.
func (r *Registry) Disable(name assistant.ToolName) {
	delete(r.tools, name)
}

// Get retrieves a tool by name, or nil when it is not enabled.
func (r *Registry) Get(name assistant.ToolName) Tool {
	return r.tools[name]
}

// Names returns enabled tool names in sorted order.
func (r *Registry) Names() []assistant.ToolName {
	names := make([]assistant.ToolName, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
