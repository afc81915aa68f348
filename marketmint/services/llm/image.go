package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"marketmint/marketmint/apperrors"
	httputils "marketmint/marketmint/utils/http"
	"marketmint/marketmint/utils/logging"
)

const (
	DefaultImageSteps = 4
	maxImageSteps     = 8
)

// ImageClient talks to a diffusion endpoint taking {prompt, steps} and
// answering with a base64-encoded image.
type ImageClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewImageClient(baseURL, token string, timeout time.Duration) *ImageClient {
	return &ImageClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type imageRequest struct {
	Prompt string `json:"prompt"`
	Steps  int    `json:"steps"`
}

// ClampSteps bounds the quality/latency knob to a small positive range.
func ClampSteps(steps int) int {
	if steps <= 0 {
		return DefaultImageSteps
	}
	if steps > maxImageSteps {
		return maxImageSteps
	}
	return steps
}

// GenerateImage returns the base64 payload for prompt. Same error taxonomy
// as text generation.
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string, steps int) (string, error) {
	defer logging.LogDuration(ctx, "llm_generate_image")()

	req := imageRequest{Prompt: prompt, Steps: ClampSteps(steps)}
	var raw json.RawMessage
	if err := httputils.PostJSON(ctx, c.httpClient, c.baseURL, c.token, req, &raw); err != nil {
		return "", upstreamError(err)
	}
	return normalizeImage(raw)
}

// normalizeImage accepts a bare base64 string, {"image": "..."} or
// {"result": {"image": "..."}}.
func normalizeImage(raw json.RawMessage) (string, error) {
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil && bare != "" {
		return bare, nil
	}

	var envelope struct {
		Image  string `json:"image"`
		Result struct {
			Image string `json:"image"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", apperrors.UpstreamFormatf("upstream image reply is not valid JSON: %v", err)
	}
	if envelope.Image != "" {
		return envelope.Image, nil
	}
	if envelope.Result.Image != "" {
		return envelope.Result.Image, nil
	}
	return "", apperrors.UpstreamFormatf("no image payload found in upstream reply")
}
