package workflowhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"salesdesk/admin-api/internal/infrastructure/metrics"
	"salesdesk/admin-api/internal/interfaces/httpserver/requests"
	"salesdesk/admin-api/internal/interfaces/httpserver/responses"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

// WorkflowClient is the slice of the workflow engine client the handler uses.
type WorkflowClient interface {
	GetProducts(ctx context.Context) (json.RawMessage, error)
	GetChats(ctx context.Context) (json.RawMessage, error)
	GetChatMessages(ctx context.Context, contactUID string) (json.RawMessage, error)
	SendMessage(ctx context.Context, contactUID, message string) (json.RawMessage, error)
}

type WorkflowHandler struct {
	client WorkflowClient
	log    zerolog.Logger
}

func NewWorkflowHandler(client WorkflowClient, log zerolog.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		client: client,
		log:    log.With().Str("handler", "workflow").Logger(),
	}
}

// Dispatch forwards one workflow action to the engine and relays the reply.
func (h *WorkflowHandler) Dispatch(reqCtx *gin.Context) {
	var req requests.ProxyRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "action is required")
		return
	}

	ctx := reqCtx.Request.Context()
	var (
		payload json.RawMessage
		err     error
	)

	switch req.Action {
	case "get_products":
		payload, err = h.client.GetProducts(ctx)
	case "get_chats":
		payload, err = h.client.GetChats(ctx)
	case "get_chat_messages":
		var data requests.ChatHistoryData
		if bindErr := json.Unmarshal(req.Data, &data); bindErr != nil || data.ContactUID == "" {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "contact_uid is required")
			return
		}
		payload, err = h.client.GetChatMessages(ctx, data.ContactUID)
	case "send_message":
		var data requests.SendMessageData
		if bindErr := json.Unmarshal(req.Data, &data); bindErr != nil || data.ContactUID == "" || data.Message == "" {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "contact_uid and message are required")
			return
		}
		payload, err = h.client.SendMessage(ctx, data.ContactUID, data.Message)
	default:
		metrics.RecordProxyAction("workflow", req.Action, "unknown")
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown action %q", req.Action))
		return
	}

	if err != nil {
		metrics.RecordProxyAction("workflow", req.Action, "error")
		h.log.Error().Err(err).Str("action", req.Action).Msg("workflow action failed")
		responses.HandleError(reqCtx, err, "workflow engine request failed")
		return
	}

	metrics.RecordProxyAction("workflow", req.Action, "success")
	responses.RelaySuccess(reqCtx, payload)
}
