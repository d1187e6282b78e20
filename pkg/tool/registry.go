package tool

import (
	"sync"

	"github.com/praxislabs/praxis/pkg/errors"
	"github.com/praxislabs/praxis/pkg/llm"
)

// Registry is a name-keyed store of tools. Build one explicitly and hand it
// to the engine; it is not a process-wide singleton. Registration is expected
// to finish before runs start, after which the registry is read-only and safe
// to share across concurrent runs.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. A duplicate name is a usage error and leaves the
// registry unchanged.
func (r *Registry) Register(t Tool) error {
	desc := t.Describe()
	if desc.Name == "" {
		return errors.New(errors.CodeInvalidInput, "tool name is required", nil)
	}
	if desc.Name == FinishName {
		return errors.New(errors.CodeInvalidInput, "tool name 'finish' is reserved", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[desc.Name]; exists {
		return errors.New(errors.CodeDuplicateTool, "tool already registered", nil).
			WithContext("tool", desc.Name)
	}
	r.tools[desc.Name] = t
	r.order = append(r.order, desc.Name)
	return nil
}

// RegisterAll registers tools in order, stopping at the first error.
func (r *Registry) RegisterAll(tools ...Tool) error {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns registered tools in registration order, optionally filtered
// by category. An empty category returns everything.
func (r *Registry) List(category Category) []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		if category != "" && t.Describe().Category != category {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Definitions builds the tool menu offered to the model: every registered
// tool plus the synthetic finish pseudo-tool.
func (r *Registry) Definitions() []llm.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]llm.Tool, 0, len(r.order)+1)
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Describe().Definition())
	}
	defs = append(defs, FinishDefinition())
	return defs
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
