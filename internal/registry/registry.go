// Package registry holds the static node type catalog: the declared inputs,
// outputs, and parameters of every node type the executor knows about. The
// executor only reads this metadata; it never mutates it during a run.
package registry

import (
	"fmt"
	"sync"

	mgerrors "github.com/mediagraph/mediagraph/pkg/errors"
)

// Port describes one declared input or output of a node type.
type Port struct {
	Key      string
	Label    string
	DataType string
	Required bool
}

// Param describes one declared parameter of a node type.
type Param struct {
	Key         string
	Label       string
	Type        string
	Default     any
	Options     []string
	Connectable bool
	Required    bool
}

// Entry is the static metadata for one node type.
type Entry struct {
	Type     string
	Category string
	Label    string
	Inputs   []Port
	Outputs  []Port
	Params   []Param

	// Cost is the nominal per-run cost reported in completion callbacks.
	Cost float64

	// SchemaDriven marks types whose required fields come from a
	// per-instance field schema carried in the node's params rather than
	// from the Inputs/Params declarations above.
	SchemaDriven bool
}

// Param returns the declared parameter with the given key.
func (e *Entry) Param(key string) (Param, bool) {
	for _, p := range e.Params {
		if p.Key == key {
			return p, true
		}
	}
	return Param{}, false
}

// Registry is a threadsafe catalog of node type entries.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an entry for its type tag. Registering a duplicate type is
// an error; the closed type set is assembled once at startup.
func (r *Registry) Register(entry Entry) error {
	if entry.Type == "" {
		return mgerrors.NewValidationError("type", "registry entry has empty type", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.Type]; exists {
		return mgerrors.NewValidationError("type", fmt.Sprintf("node type %q already registered", entry.Type), nil)
	}

	r.entries[entry.Type] = entry
	return nil
}

// Get retrieves the entry for a type tag.
func (r *Registry) Get(nodeType string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[nodeType]
	return entry, ok
}

// Types returns the registered type tags.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.entries))
	for t := range r.entries {
		types = append(types, t)
	}
	return types
}
