// Package resolve assembles the typed input bundle of a node from its
// incoming edges and the results of upstream nodes.
package resolve

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mediagraph/mediagraph/internal/model"
)

// ParamPrefix marks a target handle as a parameter override: the edge value
// replaces a declared parameter instead of filling a structural input slot.
const ParamPrefix = "param:"

// DefaultInputKey is the slot used when an edge carries no target handle.
const DefaultInputKey = "input"

var indexedPattern = regexp.MustCompile(`^(.+)\[(\d+)\]$`)

// Resolved is the assembled input bundle of one node. Inputs holds the
// values written into plain input slots; Params is the node's effective
// parameter map after overrides and array-slot aggregation. Both are fresh
// maps; resolution never mutates the node or any upstream result.
type Resolved struct {
	Inputs map[string]any
	Params map[string]any
}

// Value returns the resolved value for a key, preferring inputs over params.
func (r Resolved) Value(key string) (any, bool) {
	if v, ok := r.Inputs[key]; ok {
		return v, true
	}
	if v, ok := r.Params[key]; ok {
		return v, true
	}
	return nil, false
}

// Inputs resolves the incoming edges of a node against upstream results.
// For each edge, the value is the source result's output named by
// SourceHandle (primary value when absent); the target handle decides where
// it lands: a plain input slot, a "param:" parameter override, or an indexed
// array slot "name[k]". Edges whose source has produced no result are
// skipped. Array slots for the same base name merge into one ordered,
// gap-free array parameter.
func Inputs(node model.Node, incoming []model.Edge, lookup func(nodeID string) (model.Result, bool)) Resolved {
	resolved := Resolved{
		Inputs: make(map[string]any),
		Params: make(map[string]any, len(node.Params)),
	}
	for key, value := range node.Params {
		resolved.Params[key] = value
	}

	arrays := make(map[string]map[int]any)

	for _, edge := range incoming {
		source, ok := lookup(edge.Source)
		if !ok {
			continue
		}
		value := source.Output(edge.SourceHandle)

		handle := edge.TargetHandle
		if handle == "" {
			handle = DefaultInputKey
		}

		if strings.HasPrefix(handle, ParamPrefix) {
			key := strings.TrimPrefix(handle, ParamPrefix)
			if base, index, indexed := parseIndexed(key); indexed {
				slot(arrays, base)[index] = value
			} else if key != "" {
				resolved.Params[key] = value
			}
			continue
		}

		if base, index, indexed := parseIndexed(handle); indexed {
			slot(arrays, base)[index] = value
			continue
		}

		resolved.Inputs[handle] = value
	}

	for base, slots := range arrays {
		resolved.Params[base] = compact(slots)
	}

	return resolved
}

func slot(arrays map[string]map[int]any, base string) map[int]any {
	if arrays[base] == nil {
		arrays[base] = make(map[int]any)
	}
	return arrays[base]
}

// compact orders array slots by index and removes gaps.
func compact(slots map[int]any) []any {
	indices := make([]int, 0, len(slots))
	for i := range slots {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	values := make([]any, 0, len(indices))
	for _, i := range indices {
		values = append(values, slots[i])
	}
	return values
}

func parseIndexed(handle string) (string, int, bool) {
	matches := indexedPattern.FindStringSubmatch(handle)
	if matches == nil {
		return "", 0, false
	}
	index, err := strconv.Atoi(matches[2])
	if err != nil {
		return "", 0, false
	}
	return matches[1], index, true
}
