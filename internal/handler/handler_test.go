package handler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	mgerrors "github.com/mediagraph/mediagraph/pkg/errors"
)

func TestRegisterRejectsNilAndDuplicates(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.Error(t, r.Register("text", nil))

	h := Func(func(context.Context, map[string]any, map[string]any, ProgressFunc) (*Output, error) {
		return &Output{Primary: "ok"}, nil
	})
	require.NoError(t, r.Register("text", h))
	require.Error(t, r.Register("text", h))
}

func TestExecuteNormalizesOutput(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("seg", Func(func(context.Context, map[string]any, map[string]any, ProgressFunc) (*Output, error) {
		return &Output{
			Primary: "https://x/out.png",
			Named:   map[string]any{"mask": "https://x/mask.png"},
		}, nil
	})))

	res, err := r.Execute(context.Background(), "seg", nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "https://x/out.png", res.Primary)
	require.Equal(t, "https://x/out.png", res.Outputs["output"])
	require.Equal(t, "https://x/mask.png", res.Outputs["mask"])
}

func TestExecuteSurfacesHandlerErrorVerbatim(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("predict", Func(func(context.Context, map[string]any, map[string]any, ProgressFunc) (*Output, error) {
		return nil, fmt.Errorf("model rejected the prompt")
	})))

	_, err := r.Execute(context.Background(), "predict", nil, nil, nil)
	require.EqualError(t, err, "model rejected the prompt")
}

func TestExecuteNilOutputWithoutErrorFails(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("broken", Func(func(context.Context, map[string]any, map[string]any, ProgressFunc) (*Output, error) {
		return nil, nil
	})))

	_, err := r.Execute(context.Background(), "broken", nil, nil, nil)
	var handlerErr *mgerrors.HandlerError
	require.ErrorAs(t, err, &handlerErr)
}

func TestExecutePassthroughForUnknownTypeWithSingleInput(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	res, err := r.Execute(context.Background(), "not-wired", nil, map[string]any{"input": "forward-me"}, nil)
	require.NoError(t, err)
	require.Equal(t, "forward-me", res.Primary)
	require.Equal(t, "forward-me", res.Outputs["output"])
}

func TestExecuteUnknownTypeWithoutForwardableInputFails(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	_, err := r.Execute(context.Background(), "not-wired", nil, nil, nil)
	require.Error(t, err)

	_, err = r.Execute(context.Background(), "not-wired", nil, map[string]any{"a": 1, "b": 2}, nil)
	require.Error(t, err)
}

func TestExecuteSuppliesNoopProgress(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("steps", Func(func(_ context.Context, _ map[string]any, _ map[string]any, progress ProgressFunc) (*Output, error) {
		progress(50, "halfway")
		return &Output{Primary: "done"}, nil
	})))

	// A nil progress callback must not panic inside the handler.
	res, err := r.Execute(context.Background(), "steps", nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "done", res.Primary)
}
