package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a workflow file parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures workflow definition or required-field issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExecutionError represents a runtime failure while executing a node.
type ExecutionError struct {
	NodeID string
	Err    error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(nodeID string, err error) error {
	return &ExecutionError{NodeID: nodeID, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.NodeID != "" {
		return fmt.Sprintf("execution error on node %s: %v", e.NodeID, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// HandlerError indicates issues within handler registration or invocation.
type HandlerError struct {
	NodeType string
	Message  string
	Err      error
}

// NewHandlerError constructs a HandlerError for the given node type.
func NewHandlerError(nodeType string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &HandlerError{NodeType: nodeType, Message: message, Err: err}
}

func (e *HandlerError) Error() string {
	if e == nil {
		return ""
	}
	if e.NodeType != "" {
		return fmt.Sprintf("handler error [%s]: %s", e.NodeType, e.Message)
	}
	return fmt.Sprintf("handler error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *HandlerError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CycleError reports a dependency cycle found while leveling a node subset.
type CycleError struct {
	Remaining []string
}

// NewCycleError constructs a CycleError listing the nodes left unleveled.
func NewCycleError(remaining []string) error {
	return &CycleError{Remaining: remaining}
}

func (e *CycleError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Remaining) == 0 {
		return "cycle detected in workflow graph"
	}
	return fmt.Sprintf("cycle detected in workflow graph involving: %s", strings.Join(e.Remaining, ", "))
}
