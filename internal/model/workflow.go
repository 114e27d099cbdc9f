package model

// PrimaryOutput is the conventional name of a node's canonical output. Edges
// that do not name a source handle read this output, and every Result exposes
// its primary value under this key.
const PrimaryOutput = "output"

// Node is a unit of work in the workflow graph.
type Node struct {
	ID     string
	Type   string
	Params map[string]any
}

// Edge is a directed data dependency from one node's output to another
// node's input. SourceHandle names the upstream output being read (empty
// means the primary output). TargetHandle encodes how the value is consumed:
// a plain input slot, a "param:" parameter override, or an indexed array
// slot such as "files[2]".
type Edge struct {
	Source       string
	Target       string
	SourceHandle string
	TargetHandle string
}

// Workflow bundles the node and edge lists supplied for one run. It carries
// no cross-run identity; a fresh definition arrives with every invocation.
type Workflow struct {
	Name  string
	Nodes []Node
	Edges []Edge
}

// Node returns the node with the given id, if present.
func (w *Workflow) Node(id string) (Node, bool) {
	for _, n := range w.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIDs returns the ids of all nodes in definition order.
func (w *Workflow) NodeIDs() []string {
	ids := make([]string, 0, len(w.Nodes))
	for _, n := range w.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

// Incoming returns the edges targeting the given node, restricted to sources
// within the provided subset. A nil subset means no restriction.
func (w *Workflow) Incoming(id string, subset map[string]struct{}) []Edge {
	var edges []Edge
	for _, e := range w.Edges {
		if e.Target != id {
			continue
		}
		if subset != nil {
			if _, ok := subset[e.Source]; !ok {
				continue
			}
		}
		edges = append(edges, e)
	}
	return edges
}
