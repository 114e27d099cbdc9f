package model

import (
	"time"
)

const (
	// StatusPending indicates a node has not started yet.
	StatusPending = "pending"
	// StatusRunning indicates a node's handler is actively executing.
	StatusRunning = "running"
	// StatusConfirmed marks a successful node execution.
	StatusConfirmed = "confirmed"
	// StatusError marks a validation or handler failure on a node.
	StatusError = "error"
	// StatusSkipped indicates the node was never started because an
	// ancestor in the active subset failed or was skipped.
	StatusSkipped = "skipped"
)

// Result is the normalized output of one node execution. Primary is the
// canonical single value (typically a URL or text); Outputs maps output
// names to values and always contains Primary under PrimaryOutput.
type Result struct {
	Primary any
	Outputs map[string]any
}

// NewResult builds a Result from a primary value and optional named outputs.
// The named map is copied; the primary value is always registered under the
// conventional output name.
func NewResult(primary any, named map[string]any) Result {
	outputs := make(map[string]any, len(named)+1)
	for key, value := range named {
		outputs[key] = value
	}
	outputs[PrimaryOutput] = primary
	return Result{Primary: primary, Outputs: outputs}
}

// Output returns the value registered under the given output name, falling
// back to the primary value when the name is unknown or empty.
func (r Result) Output(name string) any {
	if name == "" {
		return r.Primary
	}
	if value, ok := r.Outputs[name]; ok {
		return value
	}
	return r.Primary
}

// Completion carries the payload of a node-complete callback.
type Completion struct {
	Values   map[string]any
	Cost     float64
	Duration time.Duration
}

// NodeStatus is a point-in-time status report for one node.
type NodeStatus struct {
	NodeID  string
	Status  string
	Message string
}
