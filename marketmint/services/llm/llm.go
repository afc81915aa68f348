// marketmint/services/llm/llm.go
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"marketmint/marketmint/apperrors"
	httputils "marketmint/marketmint/utils/http"
	"marketmint/marketmint/utils/logging"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

const maxTokens = 1024

// Client talks to an OpenAI-message-shaped text generation endpoint.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GenerateText sends a system persona plus one user message and returns the
// normalized generated text. Non-2xx replies become upstream errors carrying
// the status; success replies that match no known shape become format errors.
func (c *Client) GenerateText(ctx context.Context, system, user string) (string, error) {
	defer logging.LogDuration(ctx, "llm_generate_text")()

	req := chatRequest{
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: maxTokens,
	}

	var raw json.RawMessage
	if err := httputils.PostJSON(ctx, c.httpClient, c.baseURL, c.token, req, &raw); err != nil {
		return "", upstreamError(err)
	}
	return normalizeText(raw)
}

// upstreamError converts transport failures into the upstream taxonomy.
func upstreamError(err error) error {
	var se *httputils.StatusError
	if errors.As(err, &se) {
		return apperrors.Upstream(se.Status, se.Body)
	}
	return &apperrors.Error{Kind: apperrors.KindUpstream, Msg: "upstream request failed", Err: err}
}

// normalizeText maps the observed reply shapes onto a single string:
//
//	"text"                               bare string
//	{"result": {"response": "text"}}     Workers-AI envelope
//	{"result": "text"}                   string under result
//	{"response": "text"}                 flat response field
//
// Anything else is an explicit format error rather than a guess.
func normalizeText(raw json.RawMessage) (string, error) {
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		if bare == "" {
			return "", apperrors.UpstreamFormatf("upstream returned an empty string")
		}
		return bare, nil
	}

	var envelope struct {
		Result   json.RawMessage `json:"result"`
		Response string          `json:"response"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", apperrors.UpstreamFormatf("upstream reply is not valid JSON object: %v", err)
	}

	if len(envelope.Result) > 0 {
		var nested struct {
			Response string `json:"response"`
		}
		if err := json.Unmarshal(envelope.Result, &nested); err == nil && nested.Response != "" {
			return nested.Response, nil
		}
		var resultStr string
		if err := json.Unmarshal(envelope.Result, &resultStr); err == nil && resultStr != "" {
			return resultStr, nil
		}
	}
	if envelope.Response != "" {
		return envelope.Response, nil
	}

	return "", apperrors.UpstreamFormatf("no generated text found in upstream reply")
}
