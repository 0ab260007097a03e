package chathandler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"salesdesk/admin-api/internal/domain/chatlist"
	"salesdesk/admin-api/internal/domain/conversation"
	"salesdesk/admin-api/internal/interfaces/httpserver/responses"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

// ChatStore reads conversation projections.
type ChatStore interface {
	ListContacts(ctx context.Context) ([]chatlist.Contact, error)
	GetMessages(ctx context.Context, contactUID string) ([]conversation.Message, error)
}

type ChatHandler struct {
	store ChatStore
	now   func() time.Time
	log   zerolog.Logger
}

func NewChatHandler(store ChatStore, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		store: store,
		now:   time.Now,
		log:   log.With().Str("handler", "chat").Logger(),
	}
}

// List returns the conversation list with search, date, unread and sort
// applied server-side from the query string.
func (h *ChatHandler) List(reqCtx *gin.Context) {
	filters := chatlist.DefaultFilters()
	if err := reqCtx.ShouldBindQuery(&filters); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid filter parameters")
		return
	}

	contacts, err := h.store.ListContacts(reqCtx.Request.Context())
	if err != nil {
		responses.HandleError(reqCtx, err, "chat listing failed")
		return
	}

	filtered := chatlist.Apply(contacts, filters, h.now())
	responses.Success(reqCtx, gin.H{
		"contacts": filtered,
		"total":    len(contacts),
		"filtered": filters.Active() || filters.Search != "",
	})
}

// Messages returns one conversation's history grouped by calendar day.
func (h *ChatHandler) Messages(reqCtx *gin.Context) {
	contactUID := reqCtx.Param("uid")
	if contactUID == "" {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "contact uid is required")
		return
	}

	messages, err := h.store.GetMessages(reqCtx.Request.Context(), contactUID)
	if err != nil {
		responses.HandleError(reqCtx, err, "message history failed")
		return
	}

	responses.Success(reqCtx, gin.H{
		"contact_uid": contactUID,
		"days":        conversation.GroupByDay(messages),
	})
}
