package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediagraph/mediagraph/internal/handler"
)

func TestUploadForwardsFileURL(t *testing.T) {
	t.Parallel()

	out, err := Upload().Execute(context.Background(), map[string]any{"output": "https://cdn.example.com/a.png"}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/a.png", out.Primary)
}

func TestUploadWithoutURLFails(t *testing.T) {
	t.Parallel()

	_, err := Upload().Execute(context.Background(), map[string]any{}, nil, nil)
	require.Error(t, err)
}

func TestTextSubstitutesPlaceholders(t *testing.T) {
	t.Parallel()

	out, err := Text().Execute(context.Background(),
		map[string]any{"text": "a {style} painting of {subject}", "style": "baroque"},
		map[string]any{"subject": "a lighthouse"},
		nil)
	require.NoError(t, err)
	require.Equal(t, "a baroque painting of a lighthouse", out.Primary)
}

func TestTextInputsWinOverParams(t *testing.T) {
	t.Parallel()

	out, err := Text().Execute(context.Background(),
		map[string]any{"text": "{subject}", "subject": "from-param"},
		map[string]any{"subject": "from-edge"},
		nil)
	require.NoError(t, err)
	require.Equal(t, "from-edge", out.Primary)
}

func TestMergeTextJoinsOrderedParts(t *testing.T) {
	t.Parallel()

	out, err := MergeText().Execute(context.Background(),
		map[string]any{"texts": []any{"one", "two", "three"}, "separator": ", "},
		nil, nil)
	require.NoError(t, err)
	require.Equal(t, "one, two, three", out.Primary)
}

func TestMergeTextDefaultSeparator(t *testing.T) {
	t.Parallel()

	out, err := MergeText().Execute(context.Background(),
		map[string]any{"texts": []any{"a", "b"}},
		nil, nil)
	require.NoError(t, err)
	require.Equal(t, "a\nb", out.Primary)
}

func TestExportForwardsInputWithFormat(t *testing.T) {
	t.Parallel()

	out, err := Export().Execute(context.Background(),
		map[string]any{"format": "png"},
		map[string]any{"input": "https://cdn.example.com/out.webp"},
		nil)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/out.webp", out.Primary)
	require.Equal(t, "png", out.Named["format"])
}

func TestExportWithoutInputFails(t *testing.T) {
	t.Parallel()

	_, err := Export().Execute(context.Background(), nil, nil, nil)
	require.Error(t, err)
}

func TestRegisterBuiltins(t *testing.T) {
	t.Parallel()

	reg := handler.NewRegistry()
	require.NoError(t, RegisterBuiltins(reg, NewPredictionClient("https://api.example.com", "key")))

	for _, nodeType := range []string{"upload", "text", "merge-text", "export", "prediction"} {
		_, ok := reg.Get(nodeType)
		require.Truef(t, ok, "handler for %s missing", nodeType)
	}

	// image-resize stays unwired on purpose; dispatch falls back to pass-through.
	_, ok := reg.Get("image-resize")
	require.False(t, ok)
}

func TestRegisterBuiltinsWithoutPredictionClient(t *testing.T) {
	t.Parallel()

	reg := handler.NewRegistry()
	require.NoError(t, RegisterBuiltins(reg, nil))

	_, ok := reg.Get("prediction")
	require.False(t, ok)
}
