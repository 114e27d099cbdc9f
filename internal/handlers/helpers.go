package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/mediagraph/mediagraph/internal/handler"
	mgerrors "github.com/mediagraph/mediagraph/pkg/errors"
)

// Upload returns the handler for media upload nodes. The file is already on
// the CDN when the run starts; the node's output param carries its URL.
func Upload() handler.Handler {
	return handler.Func(func(_ context.Context, params map[string]any, _ map[string]any, _ handler.ProgressFunc) (*handler.Output, error) {
		url, _ := params["output"].(string)
		if url == "" {
			return nil, mgerrors.NewHandlerError("upload", fmt.Errorf("no uploaded file URL"))
		}
		return &handler.Output{Primary: url}, nil
	})
}

// Text returns the handler for text helper nodes. The text param is a
// template; "{name}" placeholders are substituted from resolved inputs
// first, then from params.
func Text() handler.Handler {
	return handler.Func(func(_ context.Context, params map[string]any, inputs map[string]any, _ handler.ProgressFunc) (*handler.Output, error) {
		template, _ := params["text"].(string)

		// Inputs substitute first so an edge-delivered value beats a param
		// of the same name.
		rendered := template
		for key, value := range inputs {
			rendered = strings.ReplaceAll(rendered, "{"+key+"}", asString(value))
		}
		for key, value := range params {
			rendered = strings.ReplaceAll(rendered, "{"+key+"}", asString(value))
		}

		return &handler.Output{Primary: rendered}, nil
	})
}

// MergeText returns the handler for merge-text nodes: it joins the ordered
// texts array parameter (typically filled by indexed array-slot edges).
func MergeText() handler.Handler {
	return handler.Func(func(_ context.Context, params map[string]any, _ map[string]any, _ handler.ProgressFunc) (*handler.Output, error) {
		parts, _ := params["texts"].([]any)
		separator, ok := params["separator"].(string)
		if !ok {
			separator = "\n"
		}

		rendered := make([]string, 0, len(parts))
		for _, part := range parts {
			rendered = append(rendered, asString(part))
		}

		return &handler.Output{Primary: strings.Join(rendered, separator)}, nil
	})
}

// Export returns the handler for output sink nodes: it forwards its input
// value and records the requested format as a named output.
func Export() handler.Handler {
	return handler.Func(func(_ context.Context, params map[string]any, inputs map[string]any, _ handler.ProgressFunc) (*handler.Output, error) {
		value, ok := inputs["input"]
		if !ok {
			for _, v := range inputs {
				value = v
				break
			}
		}
		if value == nil {
			return nil, mgerrors.NewHandlerError("export", fmt.Errorf("nothing to export"))
		}

		named := map[string]any{}
		if format, ok := params["format"].(string); ok && format != "" {
			named["format"] = format
		}
		return &handler.Output{Primary: value, Named: named}, nil
	})
}

func asString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
