package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediagraph/mediagraph/internal/model"
	"github.com/mediagraph/mediagraph/internal/registry"
	"github.com/mediagraph/mediagraph/internal/resolve"
)

func resolvedWith(inputs, params map[string]any) resolve.Resolved {
	if inputs == nil {
		inputs = map[string]any{}
	}
	if params == nil {
		params = map[string]any{}
	}
	return resolve.Resolved{Inputs: inputs, Params: params}
}

func TestMissingFieldsSatisfiedByInput(t *testing.T) {
	t.Parallel()

	entry := registry.Entry{
		Type:   "image-resize",
		Inputs: []registry.Port{{Key: "image", Label: "Image", Required: true}},
	}

	missing := MissingFields(entry, true, model.Node{}, resolvedWith(map[string]any{"image": "https://x/in.png"}, nil))
	require.Empty(t, missing)
}

func TestMissingFieldsReportsLabels(t *testing.T) {
	t.Parallel()

	entry := registry.Entry{
		Type:   "image-resize",
		Inputs: []registry.Port{{Key: "image", Label: "Image", Required: true}},
		Params: []registry.Param{{Key: "prompt", Label: "Prompt", Required: true}},
	}

	missing := MissingFields(entry, true, model.Node{}, resolvedWith(nil, nil))
	require.ElementsMatch(t, []string{"Image", "Prompt"}, missing)
}

func TestMissingFieldsUsesKeyWhenLabelAbsent(t *testing.T) {
	t.Parallel()

	entry := registry.Entry{
		Type:   "custom",
		Inputs: []registry.Port{{Key: "source", Required: true}},
	}

	missing := MissingFields(entry, true, model.Node{}, resolvedWith(nil, nil))
	require.Equal(t, []string{"source"}, missing)
}

func TestMissingFieldsSatisfiedByDefault(t *testing.T) {
	t.Parallel()

	entry := registry.Entry{
		Type:   "merge-text",
		Params: []registry.Param{{Key: "separator", Label: "Separator", Required: true, Default: "\n"}},
	}

	missing := MissingFields(entry, true, model.Node{}, resolvedWith(nil, nil))
	require.Empty(t, missing)
}

func TestMissingFieldsEmptyValuesCountAsMissing(t *testing.T) {
	t.Parallel()

	entry := registry.Entry{
		Type:   "custom",
		Inputs: []registry.Port{{Key: "value", Label: "Value", Required: true}},
	}

	for name, value := range map[string]any{
		"empty string": "",
		"nil":          nil,
		"empty array":  []any{},
	} {
		missing := MissingFields(entry, true, model.Node{}, resolvedWith(map[string]any{"value": value}, nil))
		require.Equalf(t, []string{"Value"}, missing, "case %s", name)
	}
}

func TestMissingFieldsEmptyDefaultDoesNotSatisfy(t *testing.T) {
	t.Parallel()

	entry := registry.Entry{
		Type:   "custom",
		Params: []registry.Param{{Key: "prompt", Label: "Prompt", Required: true, Default: ""}},
	}

	missing := MissingFields(entry, true, model.Node{}, resolvedWith(nil, nil))
	require.Equal(t, []string{"Prompt"}, missing)
}

func TestMissingFieldsSchemaDriven(t *testing.T) {
	t.Parallel()

	entry := registry.Entry{Type: "prediction", SchemaDriven: true}
	node := model.Node{
		Params: map[string]any{
			SchemaParam: []any{
				map[string]any{"key": "prompt", "label": "Prompt", "required": true},
				map[string]any{"key": "image", "label": "Input image", "required": true},
				map[string]any{"key": "seed", "label": "Seed", "required": false},
				map[string]any{"key": "steps", "label": "Steps", "required": true, "default": 30},
			},
		},
	}

	missing := MissingFields(entry, true, node, resolvedWith(map[string]any{"image": "https://x/in.png"}, nil))
	require.Equal(t, []string{"Prompt"}, missing)
}

func TestMissingFieldsSchemaDrivenWithoutSchema(t *testing.T) {
	t.Parallel()

	entry := registry.Entry{Type: "prediction", SchemaDriven: true}
	missing := MissingFields(entry, true, model.Node{}, resolvedWith(nil, nil))
	require.Empty(t, missing)
}

func TestMissingFieldsUnknownTypeHasNoRequirements(t *testing.T) {
	t.Parallel()

	missing := MissingFields(registry.Entry{}, false, model.Node{Type: "not-wired"}, resolvedWith(nil, nil))
	require.Empty(t, missing)
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	require.True(t, Empty(nil))
	require.True(t, Empty(""))
	require.True(t, Empty([]any{}))
	require.True(t, Empty([]string{}))
	require.True(t, Empty(map[string]any{}))
	require.False(t, Empty("x"))
	require.False(t, Empty(0))
	require.False(t, Empty([]any{"x"}))
}
