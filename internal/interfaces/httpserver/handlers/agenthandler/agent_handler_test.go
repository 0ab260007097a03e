package agenthandler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"

	"salesdesk/admin-api/internal/infrastructure/llmgateway"
	"salesdesk/admin-api/internal/infrastructure/logger"
)

type mockGateway struct {
	streamFn func(ctx context.Context, request openai.ChatCompletionRequest) (io.ReadCloser, error)
}

func (m *mockGateway) StreamChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (io.ReadCloser, error) {
	return m.streamFn(ctx, request)
}

func performChat(t *testing.T, gateway Gateway, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewAgentHandler(gateway, "gpt-4o-mini", logger.GetLogger())

	router := gin.New()
	router.POST("/v1/agent/chat", handler.Chat)

	req := httptest.NewRequest(http.MethodPost, "/v1/agent/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const upstreamSSE = "data: {\"choices\":[{\"delta\":{\"content\":\"Hi\"}}]}\n\ndata: [DONE]\n\n"

func TestChatPipesUpstreamBytesVerbatim(t *testing.T) {
	gateway := &mockGateway{streamFn: func(ctx context.Context, request openai.ChatCompletionRequest) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(upstreamSSE)), nil
	}}

	rec := performChat(t, gateway, `{"messages":[{"role":"user","content":"hello"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("Content-Type = %q", got)
	}
	if rec.Body.String() != upstreamSSE {
		t.Fatalf("body = %q, want upstream bytes verbatim", rec.Body.String())
	}
}

func TestChatReplaysHistoryBeforeNewTurn(t *testing.T) {
	var gotMessages []openai.ChatCompletionMessage
	gateway := &mockGateway{streamFn: func(ctx context.Context, request openai.ChatCompletionRequest) (io.ReadCloser, error) {
		gotMessages = request.Messages
		return io.NopCloser(strings.NewReader(upstreamSSE)), nil
	}}

	body := `{
		"messages":[{"role":"user","content":"and in blue?"}],
		"conversationHistory":[
			{"role":"user","content":"any laptops?"},
			{"role":"assistant","content":"yes, three models"}
		]
	}`
	performChat(t, gateway, body)

	if len(gotMessages) != 3 {
		t.Fatalf("forwarded %d messages, want 3", len(gotMessages))
	}
	if gotMessages[0].Content != "any laptops?" || gotMessages[2].Content != "and in blue?" {
		t.Fatalf("message order wrong: %+v", gotMessages)
	}
}

func TestChatRequiresMessages(t *testing.T) {
	rec := performChat(t, &mockGateway{}, `{"messages":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChatRateLimitNotice(t *testing.T) {
	gateway := &mockGateway{streamFn: func(ctx context.Context, request openai.ChatCompletionRequest) (io.ReadCloser, error) {
		return nil, &llmgateway.UpstreamStatusError{StatusCode: 429, Body: "slow down"}
	}}

	rec := performChat(t, gateway, `{"messages":[{"role":"user","content":"x"}]}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "too many requests") {
		t.Fatalf("body lacks rate-limit notice: %s", rec.Body.String())
	}
}

func TestChatCreditsNotice(t *testing.T) {
	gateway := &mockGateway{streamFn: func(ctx context.Context, request openai.ChatCompletionRequest) (io.ReadCloser, error) {
		return nil, &llmgateway.UpstreamStatusError{StatusCode: 402, Body: "payment required"}
	}}

	rec := performChat(t, gateway, `{"messages":[{"role":"user","content":"x"}]}`)
	if !strings.Contains(rec.Body.String(), "credits") {
		t.Fatalf("body lacks credits notice: %s", rec.Body.String())
	}
}
