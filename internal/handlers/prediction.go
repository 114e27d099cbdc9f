package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mediagraph/mediagraph/internal/handler"
	mgerrors "github.com/mediagraph/mediagraph/pkg/errors"
)

// PredictionClient talks to the remote prediction service. Predictions are
// submitted once and then polled until they settle; both phases observe the
// run context so cancellation aborts the wait.
type PredictionClient struct {
	BaseURL      string
	APIKey       string
	HTTPClient   *http.Client
	PollInterval time.Duration
}

// NewPredictionClient creates a client with default timeouts.
func NewPredictionClient(baseURL, apiKey string) *PredictionClient {
	return &PredictionClient{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		PollInterval: time.Second,
	}
}

type predictionState struct {
	ID       string         `json:"id"`
	Status   string         `json:"status"`
	Progress float64        `json:"progress"`
	Message  string         `json:"message"`
	Output   any            `json:"output"`
	Outputs  map[string]any `json:"outputs"`
	Error    string         `json:"error"`
}

// Prediction returns the handler for model prediction nodes. Params carry
// the model tag and the model's input fields (the schema param describes
// them but is not sent); resolved inputs override params of the same name.
func Prediction(client *PredictionClient) handler.Handler {
	return handler.Func(func(ctx context.Context, params map[string]any, inputs map[string]any, progress handler.ProgressFunc) (*handler.Output, error) {
		model, _ := params["model"].(string)
		if model == "" {
			return nil, mgerrors.NewHandlerError("prediction", fmt.Errorf("no model specified"))
		}

		payload := make(map[string]any, len(params)+len(inputs))
		for key, value := range params {
			if key == "model" || key == "schema" || key == "id" {
				continue
			}
			payload[key] = value
		}
		for key, value := range inputs {
			payload[key] = value
		}

		state, err := client.submit(ctx, model, payload)
		if err != nil {
			return nil, err
		}
		progress(0, "queued")

		state, err = client.poll(ctx, state.ID, progress)
		if err != nil {
			return nil, err
		}

		return &handler.Output{Primary: state.Output, Named: state.Outputs}, nil
	})
}

func (c *PredictionClient) submit(ctx context.Context, model string, input map[string]any) (*predictionState, error) {
	body, err := json.Marshal(map[string]any{"model": model, "input": input})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/predictions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	return c.do(req)
}

func (c *PredictionClient) fetch(ctx context.Context, id string) (*predictionState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/predictions/"+id, nil)
	if err != nil {
		return nil, err
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	return c.do(req)
}

func (c *PredictionClient) do(req *http.Request) (*predictionState, error) {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("prediction service returned %s: %s", resp.Status, bytes.TrimSpace(data))
	}

	var state predictionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// poll waits for the prediction to settle, reporting progress along the way.
// The first status fetch happens immediately so predictions that settle fast
// do not pay a full poll interval of latency.
func (c *PredictionClient) poll(ctx context.Context, id string, progress handler.ProgressFunc) (*predictionState, error) {
	interval := c.PollInterval
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		state, err := c.fetch(ctx, id)
		if err != nil {
			return nil, err
		}

		switch state.Status {
		case "succeeded":
			progress(100, "")
			return state, nil
		case "failed", "cancelled":
			message := state.Error
			if message == "" {
				message = "prediction " + state.Status
			}
			return nil, fmt.Errorf("%s", message)
		default:
			progress(state.Progress, state.Message)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
