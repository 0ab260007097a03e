package llmgateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func TestStreamChatCompletionSetsStreamAndAuth(t *testing.T) {
	var gotAuth string
	var gotReq openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := NewClient(server.URL, "gw-key", time.Minute)
	body, err := client.StreamChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []openai.ChatCompletionMessage{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	defer body.Close()

	if gotAuth != "Bearer gw-key" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if !gotReq.Stream {
		t.Fatal("request not marked streaming")
	}

	payload, _ := io.ReadAll(body)
	if string(payload) != "data: [DONE]\n\n" {
		t.Fatalf("payload = %q", payload)
	}
}

func TestStreamChatCompletionStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Minute)
	_, err := client.StreamChatCompletion(context.Background(), openai.ChatCompletionRequest{Model: "m"})

	var statusErr *UpstreamStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("got %v, want UpstreamStatusError", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d", statusErr.StatusCode)
	}
}

func TestStreamChatCompletionContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "", time.Minute)
	if _, err := client.StreamChatCompletion(ctx, openai.ChatCompletionRequest{Model: "m"}); err == nil {
		t.Fatal("cancelled context accepted")
	}
}
