package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func fakeResponsesServer(t *testing.T, outputText string, status int, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if !strings.HasSuffix(r.URL.Path, "/responses") {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		if req["model"] != "test-model" {
			t.Errorf("model=%v", req["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		resp := map[string]any{
			"id":         "resp_1",
			"object":     "response",
			"created_at": 1,
			"model":      "test-model",
			"status":     "completed",
			"output": []any{
				map[string]any{
					"type":   "message",
					"id":     "msg_1",
					"role":   "assistant",
					"status": "completed",
					"content": []any{
						map[string]any{"type": "output_text", "text": outputText, "annotations": []any{}},
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIScorer_DecodesAndRounds(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := fakeResponsesServer(t, `{"neg":0.1234,"neu":0.5,"pos":0.3766,"compound":0.61249}`, http.StatusOK, &calls)

	sc, err := NewOpenAIScorer(OpenAIOptions{APIKey: "k", Model: "test-model", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIScorer: %v", err)
	}
	got, err := sc.Score(context.Background(), "Markets rally on upbeat jobs report")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.Neg != 0.123 || got.Pos != 0.377 || got.Neu != 0.5 {
		t.Fatalf("scores=%+v", got)
	}
	if got.Compound != 0.6125 {
		t.Fatalf("Compound=%v, want 0.6125", got.Compound)
	}
}

func TestOpenAIScorer_ClampsOutOfRange(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := fakeResponsesServer(t, `{"neg":1.5,"neu":-0.2,"pos":0,"compound":-3}`, http.StatusOK, &calls)

	sc, err := NewOpenAIScorer(OpenAIOptions{APIKey: "k", Model: "test-model", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIScorer: %v", err)
	}
	got, err := sc.Score(context.Background(), "x")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.Neg != 1 || got.Neu != 0 || got.Compound != -1 {
		t.Fatalf("scores=%+v", got)
	}
}

func TestOpenAIScorer_ServerErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := fakeResponsesServer(t, "", http.StatusInternalServerError, &calls)

	sc, err := NewOpenAIScorer(OpenAIOptions{APIKey: "k", Model: "test-model", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIScorer: %v", err)
	}
	if _, err := sc.Score(context.Background(), "x"); err == nil {
		t.Fatalf("expected error from 500 response")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("calls=%d, want 1", n)
	}
}

func TestNewOpenAIScorer_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewOpenAIScorer(OpenAIOptions{}); err == nil {
		t.Fatalf("expected error for empty api key")
	}
	sc, err := NewOpenAIScorer(OpenAIOptions{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewOpenAIScorer: %v", err)
	}
	if sc.model != DefaultModel {
		t.Fatalf("model=%q, want %q", sc.model, DefaultModel)
	}
}

func TestGenerateSchema_StrictObject(t *testing.T) {
	t.Parallel()

	s := GenerateSchema[sentimentResponse]()
	if s["type"] != "object" {
		t.Fatalf("type=%v", s["type"])
	}
	if s["additionalProperties"] != false {
		t.Fatalf("additionalProperties=%v", s["additionalProperties"])
	}
	req, ok := s["required"].([]string)
	if !ok || len(req) != 4 {
		t.Fatalf("required=%v", s["required"])
	}
	props, ok := s["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("properties=%T", s["properties"])
	}
	for _, k := range []string{"neg", "neu", "pos", "compound"} {
		if _, ok := props[k]; !ok {
			t.Fatalf("missing property %q", k)
		}
	}
}
