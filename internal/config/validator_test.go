package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	mgerrors "github.com/mediagraph/mediagraph/pkg/errors"
)

func validDocument() *Document {
	return &Document{
		Version: "1",
		Name:    "test",
		Nodes: []NodeSpec{
			{ID: "a", Type: "upload"},
			{ID: "b", Type: "export"},
		},
		Edges: []EdgeSpec{{Source: "a", Target: "b", TargetHandle: "input"}},
	}
}

func requireValidationError(t *testing.T, err error, fragment string) {
	t.Helper()

	var validationErr *mgerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Error(), fragment)
}

func TestValidateAcceptsValidDocument(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(validDocument()))
}

func TestValidateRejectsNilDocument(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))
}

func TestValidateRequiresNameAndNodes(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Name = ""
	require.Error(t, Validate(doc))

	doc = validDocument()
	doc.Nodes = nil
	require.Error(t, Validate(doc))
}

func TestValidateRejectsBadNodeID(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Nodes[0].ID = "has spaces"
	requireValidationError(t, Validate(doc), "node_id")
}

func TestValidateRejectsDuplicateNodeIDs(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Nodes[1].ID = "a"
	doc.Edges = nil
	requireValidationError(t, Validate(doc), "duplicate node id")
}

func TestValidateRejectsUnknownEdgeEndpoints(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Edges[0].Source = "ghost"
	requireValidationError(t, Validate(doc), "unknown node")

	doc = validDocument()
	doc.Edges[0].Target = "ghost"
	requireValidationError(t, Validate(doc), "unknown node")
}

func TestValidateRejectsSelfEdges(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Edges[0].Target = "a"
	requireValidationError(t, Validate(doc), "depends on itself")
}
