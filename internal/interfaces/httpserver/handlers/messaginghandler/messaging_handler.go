package messaginghandler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"salesdesk/admin-api/internal/infrastructure/metrics"
	"salesdesk/admin-api/internal/infrastructure/whatsapp"
	"salesdesk/admin-api/internal/interfaces/httpserver/requests"
	"salesdesk/admin-api/internal/interfaces/httpserver/responses"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

// Messenger is the slice of the WhatsApp vendor client the handler uses.
type Messenger interface {
	SendMessage(ctx context.Context, to, message string) error
	GetContacts(ctx context.Context) ([]whatsapp.Contact, error)
	GetContact(ctx context.Context, id string) (*whatsapp.Contact, error)
}

type MessagingHandler struct {
	messenger Messenger
	log       zerolog.Logger
}

func NewMessagingHandler(messenger Messenger, log zerolog.Logger) *MessagingHandler {
	return &MessagingHandler{
		messenger: messenger,
		log:       log.With().Str("handler", "messaging").Logger(),
	}
}

// Dispatch routes one messaging action to the WhatsApp vendor API.
func (h *MessagingHandler) Dispatch(reqCtx *gin.Context) {
	var req requests.ProxyRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "action is required")
		return
	}

	ctx := reqCtx.Request.Context()

	switch req.Action {
	case "send-message":
		var data requests.SendMessageData
		if err := json.Unmarshal(req.Data, &data); err != nil || data.ContactUID == "" || data.Message == "" {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "contact_uid and message are required")
			return
		}
		if err := h.messenger.SendMessage(ctx, data.ContactUID, data.Message); err != nil {
			metrics.RecordProxyAction("messaging", req.Action, "error")
			h.log.Error().Err(err).Str("contact_uid", data.ContactUID).Msg("whatsapp send failed")
			responses.HandleError(reqCtx, err, "message delivery failed")
			return
		}
		metrics.RecordProxyAction("messaging", req.Action, "success")
		responses.Success(reqCtx, gin.H{"delivered": true})

	case "get-contacts":
		contacts, err := h.messenger.GetContacts(ctx)
		if err != nil {
			metrics.RecordProxyAction("messaging", req.Action, "error")
			responses.HandleError(reqCtx, err, "contact listing failed")
			return
		}
		metrics.RecordProxyAction("messaging", req.Action, "success")
		responses.Success(reqCtx, contacts)

	case "get-contact":
		var data requests.ChatHistoryData
		if err := json.Unmarshal(req.Data, &data); err != nil || data.ContactUID == "" {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "contact_uid is required")
			return
		}
		contact, err := h.messenger.GetContact(ctx, data.ContactUID)
		if err != nil {
			metrics.RecordProxyAction("messaging", req.Action, "error")
			responses.HandleError(reqCtx, err, "contact lookup failed")
			return
		}
		metrics.RecordProxyAction("messaging", req.Action, "success")
		responses.Success(reqCtx, contact)

	default:
		metrics.RecordProxyAction("messaging", req.Action, "unknown")
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown action %q", req.Action))
	}
}
