package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/utils/logging"
)

func TestGenerateTextSuccess(t *testing.T) {
	logging.InitTestLogger()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("missing auth header, got %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected message array: %+v", req.Messages)
		}
		w.Write([]byte(`{"result":{"response":"a catchy title"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", 5*time.Second)
	out, err := client.GenerateText(context.Background(), "persona", "prompt")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if out != "a catchy title" {
		t.Errorf("got %q", out)
	}
}

func TestGenerateTextUpstreamError(t *testing.T) {
	logging.InitTestLogger()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", 5*time.Second)
	_, err := client.GenerateText(context.Background(), "persona", "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	var ae *apperrors.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apperrors.Error, got %T", err)
	}
	if ae.Kind != apperrors.KindUpstream {
		t.Errorf("kind = %v, want KindUpstream", ae.Kind)
	}
	if ae.Status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", ae.Status)
	}
}

func TestNormalizeTextShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare string", `"hello"`, "hello"},
		{"workers envelope", `{"result":{"response":"hello"}}`, "hello"},
		{"string under result", `{"result":"hello"}`, "hello"},
		{"flat response", `{"response":"hello"}`, "hello"},
	}
	for _, tc := range cases {
		got, err := normalizeText(json.RawMessage(tc.raw))
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeTextUnknownShape(t *testing.T) {
	for _, raw := range []string{`{}`, `{"choices":[]}`, `""`, `42`} {
		if _, err := normalizeText(json.RawMessage(raw)); !apperrors.IsKind(err, apperrors.KindUpstreamFormat) {
			t.Errorf("normalizeText(%s): expected format error, got %v", raw, err)
		}
	}
}

func TestNormalizeImageShapes(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`"aGVsbG8="`, "aGVsbG8="},
		{`{"image":"aGVsbG8="}`, "aGVsbG8="},
		{`{"result":{"image":"aGVsbG8="}}`, "aGVsbG8="},
	}
	for _, tc := range cases {
		got, err := normalizeImage(json.RawMessage(tc.raw))
		if err != nil {
			t.Errorf("normalizeImage(%s): %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("normalizeImage(%s) = %q", tc.raw, got)
		}
	}

	if _, err := normalizeImage(json.RawMessage(`{"status":"done"}`)); !apperrors.IsKind(err, apperrors.KindUpstreamFormat) {
		t.Errorf("expected format error for missing image payload, got %v", err)
	}
}

func TestClampSteps(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, DefaultImageSteps},
		{-3, DefaultImageSteps},
		{4, 4},
		{8, 8},
		{50, maxImageSteps},
	}
	for _, tc := range cases {
		if got := ClampSteps(tc.in); got != tc.want {
			t.Errorf("ClampSteps(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestGenerateImageSendsSteps(t *testing.T) {
	logging.InitTestLogger()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Steps != DefaultImageSteps {
			t.Errorf("steps = %d, want default %d", req.Steps, DefaultImageSteps)
		}
		w.Write([]byte(`{"image":"aGVsbG8="}`))
	}))
	defer server.Close()

	client := NewImageClient(server.URL, "secret", 5*time.Second)
	out, err := client.GenerateImage(context.Background(), "studio backdrop", 0)
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if out != "aGVsbG8=" {
		t.Errorf("got %q", out)
	}
}
