// internal/mcpserver/registry.go
package mcpserver

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Tool pairs a tool definition with the handler that serves it.
type Tool struct {
	Definition mcp.Tool
	Handler    server.ToolHandlerFunc
}

// Registry holds the tools exposed by the server, keyed by name.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	logger *zap.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		tools:  make(map[string]Tool),
		logger: logger.Named("tool_registry"),
	}
}

// Register adds a tool. Names must be unique.
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Definition.Name
	if name == "" {
		return fmt.Errorf("tool name is required")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool %s has no handler", name)
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}

	r.tools[name] = tool
	r.logger.Debug("Tool registered", zap.String("name", name))

	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tools[name]
	if !exists {
		return Tool{}, fmt.Errorf("tool %s not found", name)
	}

	return t, nil
}

// List returns the registered tool names in sorted order.
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

// Tools returns every registered tool, sorted by name.
func (r *Registry) Tools() []Tool {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(names))
	for _, name := range names {
		if t, ok := r.tools[name]; ok {
			out = append(out, t)
		}
	}
	return out
}
