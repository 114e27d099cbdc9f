// Package validate checks that a node's required fields are satisfiable
// before its handler is invoked.
package validate

import (
	"reflect"

	"github.com/mediagraph/mediagraph/internal/model"
	"github.com/mediagraph/mediagraph/internal/registry"
	"github.com/mediagraph/mediagraph/internal/resolve"
)

// SchemaParam is the node parameter carrying the per-instance field schema
// of schema-driven node types.
const SchemaParam = "schema"

type requirement struct {
	key   string
	label string
	deflt any
}

// MissingFields returns the human-readable labels of required fields that
// are absent from the resolved inputs, absent from the effective params, and
// without a usable default. An empty return means the node may execute.
// Unknown node types (no registry entry) have no declared requirements.
func MissingFields(entry registry.Entry, known bool, node model.Node, resolved resolve.Resolved) []string {
	if !known {
		return nil
	}

	var missing []string
	for _, req := range requirements(entry, node) {
		if value, ok := resolved.Value(req.key); ok && !Empty(value) {
			continue
		}
		if !Empty(req.deflt) {
			continue
		}
		missing = append(missing, req.label)
	}
	return missing
}

func requirements(entry registry.Entry, node model.Node) []requirement {
	if entry.SchemaDriven {
		return schemaRequirements(node)
	}

	var reqs []requirement
	for _, input := range entry.Inputs {
		if !input.Required {
			continue
		}
		reqs = append(reqs, requirement{key: input.Key, label: labelOr(input.Label, input.Key)})
	}
	for _, param := range entry.Params {
		if !param.Required {
			continue
		}
		reqs = append(reqs, requirement{key: param.Key, label: labelOr(param.Label, param.Key), deflt: param.Default})
	}
	return reqs
}

// schemaRequirements reads the per-instance field schema from the node's
// params. The schema is a list of field descriptors with key, label,
// required, and default entries, as produced by the model catalog.
func schemaRequirements(node model.Node) []requirement {
	raw, ok := node.Params[SchemaParam]
	if !ok {
		return nil
	}

	fields, ok := raw.([]any)
	if !ok {
		return nil
	}

	var reqs []requirement
	for _, item := range fields {
		field, ok := item.(map[string]any)
		if !ok {
			continue
		}
		required, _ := field["required"].(bool)
		if !required {
			continue
		}
		key, _ := field["key"].(string)
		if key == "" {
			continue
		}
		label, _ := field["label"].(string)
		reqs = append(reqs, requirement{key: key, label: labelOr(label, key), deflt: field["default"]})
	}
	return reqs
}

func labelOr(label, key string) string {
	if label != "" {
		return label
	}
	return key
}

// Empty reports whether a value counts as missing: nil, an empty string, or
// an empty slice, array, or map.
func Empty(value any) bool {
	if value == nil {
		return true
	}

	switch v := value.(type) {
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
