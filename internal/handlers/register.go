// Package handlers provides the built-in node handlers wired into the
// dispatch registry at startup. Each handler is deliberately thin: it is the
// executor's boundary with uploads, prediction services, and helper nodes,
// not the product's media pipeline itself. Local media tools (for example
// image-resize) intentionally have no handler here and rely on the dispatch
// layer's pass-through fallback.
package handlers

import (
	"github.com/mediagraph/mediagraph/internal/handler"
)

// RegisterBuiltins wires the built-in handlers into the registry. The
// prediction client may be nil, in which case prediction nodes degrade to
// the pass-through fallback like any unwired type.
func RegisterBuiltins(reg *handler.Registry, predictions *PredictionClient) error {
	if err := reg.Register("upload", Upload()); err != nil {
		return err
	}
	if err := reg.Register("text", Text()); err != nil {
		return err
	}
	if err := reg.Register("merge-text", MergeText()); err != nil {
		return err
	}
	if err := reg.Register("export", Export()); err != nil {
		return err
	}
	if predictions != nil {
		if err := reg.Register("prediction", Prediction(predictions)); err != nil {
			return err
		}
	}
	return nil
}
