// Package handler maps node type tags to the operations that compute their
// results and normalizes heterogeneous handler outputs into the canonical
// result shape.
package handler

import (
	"context"
	"fmt"
	"sync"

	"github.com/mediagraph/mediagraph/internal/model"
	mgerrors "github.com/mediagraph/mediagraph/pkg/errors"
)

// ProgressFunc receives progress events from a running handler. Percent is
// monotonic but not guaranteed smooth; message may be empty.
type ProgressFunc func(percent float64, message string)

// Output is the raw return of a handler before normalization. Named output
// values are optional; the primary value is mandatory for a meaningful
// result.
type Output struct {
	Primary any
	Named   map[string]any
}

// Handler computes the result of one node. Implementations must observe ctx
// during long-running waits so runs can be cancelled cooperatively. Errors
// are surfaced verbatim to status callbacks, so messages should be readable.
type Handler interface {
	Execute(ctx context.Context, params map[string]any, inputs map[string]any, progress ProgressFunc) (*Output, error)
}

// Func adapts a plain function to the Handler interface.
type Func func(ctx context.Context, params map[string]any, inputs map[string]any, progress ProgressFunc) (*Output, error)

// Execute implements Handler.
func (f Func) Execute(ctx context.Context, params map[string]any, inputs map[string]any, progress ProgressFunc) (*Output, error) {
	return f(ctx, params, inputs, progress)
}

// Registry is a threadsafe dispatch table from type tag to handler.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler implementation for the provided node type.
func (r *Registry) Register(nodeType string, h Handler) error {
	if h == nil {
		return mgerrors.NewHandlerError(nodeType, fmt.Errorf("handler is nil"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[nodeType]; exists {
		return mgerrors.NewHandlerError(nodeType, fmt.Errorf("handler already registered"))
	}

	r.handlers[nodeType] = h
	return nil
}

// Get retrieves the handler for a node type.
func (r *Registry) Get(nodeType string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[nodeType]
	return h, ok
}

// Execute dispatches to the handler registered for nodeType and normalizes
// its output into a Result. A type without a handler that carries exactly
// one resolved input degrades to a pass-through: the input becomes the
// output. This keeps node types not yet wired into the executor from
// failing whole workflows.
func (r *Registry) Execute(ctx context.Context, nodeType string, params map[string]any, inputs map[string]any, progress ProgressFunc) (model.Result, error) {
	h, ok := r.Get(nodeType)
	if !ok {
		return passthrough(nodeType, inputs)
	}

	if progress == nil {
		progress = func(float64, string) {}
	}

	out, err := h.Execute(ctx, params, inputs, progress)
	if err != nil {
		return model.Result{}, err
	}
	if out == nil {
		return model.Result{}, mgerrors.NewHandlerError(nodeType, fmt.Errorf("handler returned no output"))
	}

	return model.NewResult(out.Primary, out.Named), nil
}

func passthrough(nodeType string, inputs map[string]any) (model.Result, error) {
	if len(inputs) != 1 {
		return model.Result{}, mgerrors.NewHandlerError(nodeType, fmt.Errorf("no handler registered"))
	}
	for _, value := range inputs {
		return model.NewResult(value, nil), nil
	}
	return model.Result{}, mgerrors.NewHandlerError(nodeType, fmt.Errorf("no handler registered"))
}
