package config

import (
	"github.com/mediagraph/mediagraph/internal/model"
)

// Document represents a workflow definition file.
type Document struct {
	Version string     `yaml:"version" validate:"required"`
	Name    string     `yaml:"name" validate:"required,min=1,max=100"`
	Nodes   []NodeSpec `yaml:"nodes" validate:"required,min=1,dive"`
	Edges   []EdgeSpec `yaml:"edges" validate:"omitempty,dive"`
}

// NodeSpec describes one node of the workflow graph.
type NodeSpec struct {
	ID     string         `yaml:"id" validate:"required,node_id"`
	Type   string         `yaml:"type" validate:"required"`
	Params map[string]any `yaml:"params,omitempty"`
}

// EdgeSpec describes one data dependency. source_handle names the upstream
// output (empty means the primary output); target_handle uses the input /
// param: / name[k] encodings understood by the resolver.
type EdgeSpec struct {
	Source       string `yaml:"source" validate:"required"`
	Target       string `yaml:"target" validate:"required"`
	SourceHandle string `yaml:"source_handle,omitempty"`
	TargetHandle string `yaml:"target_handle,omitempty"`
}

// Workflow converts the document into the engine's workflow model.
func (d *Document) Workflow() *model.Workflow {
	wf := &model.Workflow{Name: d.Name}
	for _, n := range d.Nodes {
		wf.Nodes = append(wf.Nodes, model.Node{ID: n.ID, Type: n.Type, Params: n.Params})
	}
	for _, e := range d.Edges {
		wf.Edges = append(wf.Edges, model.Edge{
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
		})
	}
	return wf
}
