// marketmint/utils/http/httputils.go
package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of an upstream error body is kept for
// diagnostics.
const maxErrorBody = 2048

// StatusError is returned for any non-2xx reply so callers can classify the
// failure with the upstream status and a truncated body.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status: %d: %s", e.Status, e.Body)
}

// PostJSON posts body as JSON and decodes the 2xx reply into resp. An empty
// bearer skips the Authorization header. resp may be a *json.RawMessage when
// the caller wants to normalize the shape itself.
func PostJSON(ctx context.Context, client *http.Client, url, bearer string, body, resp interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	r, err := client.Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode < 200 || r.StatusCode > 299 {
		return &StatusError{Status: r.StatusCode, Body: readTruncated(r.Body)}
	}
	if resp != nil {
		return json.NewDecoder(r.Body).Decode(resp)
	}
	return nil
}

// GetJSON fetches url and decodes the 2xx reply into resp.
func GetJSON(ctx context.Context, client *http.Client, url string, resp interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	r, err := client.Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode < 200 || r.StatusCode > 299 {
		return &StatusError{Status: r.StatusCode, Body: readTruncated(r.Body)}
	}
	if resp != nil {
		return json.NewDecoder(r.Body).Decode(resp)
	}
	return nil
}

func readTruncated(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return string(b)
}
