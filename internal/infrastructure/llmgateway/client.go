package llmgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"salesdesk/admin-api/internal/utils/platformerrors"
)

// Client opens streaming chat completions against the LLM gateway. It uses
// net/http directly because the stream must be consumed incrementally rather
// than buffered into a response object.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// UpstreamStatusError reports a non-2xx gateway reply so callers can map the
// rate-limit and credit statuses to distinct notices.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("llm gateway returned %d: %s", e.StatusCode, e.Body)
}

// StreamChatCompletion POSTs the request with streaming enabled and returns
// the raw body for piping. The reader's lifetime is bound to ctx: cancelling
// the request context aborts the upstream read.
func (c *Client) StreamChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (io.ReadCloser, error) {
	request.Stream = true

	body, err := json.Marshal(request)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "marshal chat completion request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "build chat completion request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUpstream, "llm gateway request failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &UpstreamStatusError{StatusCode: resp.StatusCode, Body: string(detail)}
	}

	if resp.Body == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUpstream, "llm gateway returned no body", nil)
	}

	return resp.Body, nil
}
