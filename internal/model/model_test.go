package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResultRegistersPrimaryUnderConventionalName(t *testing.T) {
	t.Parallel()

	res := NewResult("https://cdn.example.com/out.png", map[string]any{"mask": "https://cdn.example.com/mask.png"})

	require.Equal(t, "https://cdn.example.com/out.png", res.Primary)
	require.Equal(t, "https://cdn.example.com/out.png", res.Outputs[PrimaryOutput])
	require.Equal(t, "https://cdn.example.com/mask.png", res.Outputs["mask"])
}

func TestResultOutputFallsBackToPrimary(t *testing.T) {
	t.Parallel()

	res := NewResult("primary", map[string]any{"named": "value"})

	require.Equal(t, "value", res.Output("named"))
	require.Equal(t, "primary", res.Output(""))
	require.Equal(t, "primary", res.Output("no_such_output"))
}

func TestWorkflowIncomingRestrictsToSubset(t *testing.T) {
	t.Parallel()

	wf := Workflow{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []Edge{
			{Source: "a", Target: "c", TargetHandle: "image"},
			{Source: "b", Target: "c", TargetHandle: "mask"},
		},
	}

	all := wf.Incoming("c", nil)
	require.Len(t, all, 2)

	subset := map[string]struct{}{"a": {}, "c": {}}
	restricted := wf.Incoming("c", subset)
	require.Len(t, restricted, 1)
	require.Equal(t, "a", restricted[0].Source)
}

func TestWorkflowNodeLookup(t *testing.T) {
	t.Parallel()

	wf := Workflow{Nodes: []Node{{ID: "a", Type: "text"}}}

	node, ok := wf.Node("a")
	require.True(t, ok)
	require.Equal(t, "text", node.Type)

	_, ok = wf.Node("missing")
	require.False(t, ok)
}
