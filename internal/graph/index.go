package graph

import (
	"sort"

	"github.com/mediagraph/mediagraph/internal/model"
)

// Index holds the forward and backward adjacency of a workflow graph. It is
// a pure function of the node-id list and edge list handed to NewIndex; no
// method mutates it.
type Index struct {
	ids      []string
	forward  map[string][]string
	backward map[string][]string
}

// NewIndex builds adjacency maps from the given nodes and edges. Edges whose
// endpoints are not in the node list are ignored. Duplicate edges between
// the same pair (for example one per handle) collapse to a single adjacency
// entry.
func NewIndex(nodeIDs []string, edges []model.Edge) *Index {
	known := make(map[string]struct{}, len(nodeIDs))
	for _, id := range nodeIDs {
		known[id] = struct{}{}
	}

	forward := make(map[string][]string, len(nodeIDs))
	backward := make(map[string][]string, len(nodeIDs))
	seen := make(map[[2]string]struct{}, len(edges))

	for _, e := range edges {
		if _, ok := known[e.Source]; !ok {
			continue
		}
		if _, ok := known[e.Target]; !ok {
			continue
		}
		pair := [2]string{e.Source, e.Target}
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		forward[e.Source] = append(forward[e.Source], e.Target)
		backward[e.Target] = append(backward[e.Target], e.Source)
	}

	return &Index{
		ids:      append([]string(nil), nodeIDs...),
		forward:  forward,
		backward: backward,
	}
}

// NodeIDs returns the ids the index was built from.
func (ix *Index) NodeIDs() []string {
	return append([]string(nil), ix.ids...)
}

// Dependencies returns the direct upstream nodes of id.
func (ix *Index) Dependencies(id string) []string {
	return append([]string(nil), ix.backward[id]...)
}

// Dependents returns the direct downstream nodes of id.
func (ix *Index) Dependents(id string) []string {
	return append([]string(nil), ix.forward[id]...)
}

// Ancestors returns the backward closure of id, including id itself.
func (ix *Index) Ancestors(id string) map[string]struct{} {
	return reach(ix.backward, id)
}

// Descendants returns the forward closure of id, including id itself.
func (ix *Index) Descendants(id string) map[string]struct{} {
	return reach(ix.forward, id)
}

// reach computes a breadth-first closure over the given adjacency map. The
// same walk serves both traversal directions; callers choose the direction
// by passing the forward or backward map.
func reach(adjacency map[string][]string, start string) map[string]struct{} {
	visited := map[string]struct{}{start: {}}
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	return visited
}

// SortedIDs renders a node set as a sorted slice, for stable messages.
func SortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
