package agenthandler

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"salesdesk/admin-api/internal/domain/agentstream"
	"salesdesk/admin-api/internal/infrastructure/llmgateway"
	"salesdesk/admin-api/internal/infrastructure/metrics"
	"salesdesk/admin-api/internal/interfaces/httpserver/middlewares"
	"salesdesk/admin-api/internal/interfaces/httpserver/requests"
	"salesdesk/admin-api/internal/interfaces/httpserver/responses"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

const (
	rateLimitedNotice     = "The agent is receiving too many requests. Please wait a moment and try again."
	creditsRequiredNotice = "The agent gateway reports no remaining credits."
)

// Gateway opens streaming chat completions.
type Gateway interface {
	StreamChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (io.ReadCloser, error)
}

type AgentHandler struct {
	gateway Gateway
	model   string
	log     zerolog.Logger
}

func NewAgentHandler(gateway Gateway, model string, log zerolog.Logger) *AgentHandler {
	return &AgentHandler{
		gateway: gateway,
		model:   model,
		log:     log.With().Str("handler", "agent").Logger(),
	}
}

// Chat replays the prior conversation plus the new turn to the LLM gateway
// and pipes the upstream SSE bytes through verbatim. The stream is also fed
// through an accumulator so the full assistant reply can be logged.
func (h *AgentHandler) Chat(reqCtx *gin.Context) {
	var req requests.AgentChatRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "messages are required")
		return
	}

	chatReq := openai.ChatCompletionRequest{
		Model:    h.model,
		Messages: append(append([]openai.ChatCompletionMessage{}, req.ConversationHistory...), req.Messages...),
	}

	ctx := reqCtx.Request.Context()
	start := time.Now()

	body, err := h.gateway.StreamChatCompletion(ctx, chatReq)
	if err != nil {
		var statusErr *llmgateway.UpstreamStatusError
		if errors.As(err, &statusErr) {
			switch statusErr.StatusCode {
			case 429:
				responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUpstream, rateLimitedNotice)
			case 402:
				responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUpstream, creditsRequiredNotice)
			default:
				h.log.Error().Int("status", statusErr.StatusCode).Msg("llm gateway rejected request")
				responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUpstream, "agent request failed")
			}
			metrics.RecordAgentStream(h.model, "rejected", time.Since(start).Seconds())
			return
		}
		metrics.RecordAgentStream(h.model, "error", time.Since(start).Seconds())
		responses.HandleError(reqCtx, err, "agent request failed")
		return
	}
	defer body.Close()

	flusher, ok := middlewares.PrepareSSE(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeInternal, "streaming is not supported")
		return
	}

	metrics.ActiveAgentStreams.Inc()
	defer metrics.ActiveAgentStreams.Dec()

	accumulator := agentstream.New(nil)
	outcome := h.pipe(reqCtx, body, accumulator, flusher)
	accumulator.Flush()

	metrics.RecordAgentStream(h.model, outcome, time.Since(start).Seconds())
	h.log.Info().
		Str("outcome", outcome).
		Int("reply_chars", len(accumulator.Text())).
		Dur("duration", time.Since(start)).
		Msg("agent stream finished")
}

// pipe copies upstream bytes to the client as they arrive, teeing each chunk
// through the accumulator. A client disconnect or upstream error ends the
// stream; neither is fatal to the process.
func (h *AgentHandler) pipe(reqCtx *gin.Context, body io.Reader, accumulator *agentstream.Accumulator, flusher interface{ Flush() }) string {
	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			accumulator.Write(buf[:n])
			if _, writeErr := reqCtx.Writer.Write(buf[:n]); writeErr != nil {
				h.log.Warn().Err(writeErr).Msg("client disconnected mid-stream")
				return "client_gone"
			}
			flusher.Flush()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "complete"
			}
			h.log.Warn().Err(err).Msg("upstream stream ended with error")
			return "upstream_error"
		}
	}
}
