package databasehandler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"salesdesk/admin-api/internal/domain/catalog"
	"salesdesk/admin-api/internal/domain/chatlist"
	"salesdesk/admin-api/internal/domain/conversation"
	"salesdesk/admin-api/internal/infrastructure/metrics"
	"salesdesk/admin-api/internal/interfaces/httpserver/requests"
	"salesdesk/admin-api/internal/interfaces/httpserver/responses"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

// CatalogService is the slice of the catalog domain service the handler uses.
type CatalogService interface {
	List(ctx context.Context, category catalog.Category) ([]*catalog.Product, error)
	Get(ctx context.Context, category catalog.Category, id uint) (*catalog.Product, error)
	Create(ctx context.Context, product *catalog.Product) error
	Update(ctx context.Context, product *catalog.Product) error
	Delete(ctx context.Context, category catalog.Category, id uint) error
	ListTables(ctx context.Context) ([]string, error)
	DescribeTable(ctx context.Context, table string) ([]catalog.ColumnInfo, error)
}

// ChatStore reads conversation projections and records outbound messages.
type ChatStore interface {
	ListContacts(ctx context.Context) ([]chatlist.Contact, error)
	RecordOutbound(ctx context.Context, contactUID, body string) (*conversation.Message, error)
}

type DatabaseHandler struct {
	catalog CatalogService
	chats   ChatStore
	log     zerolog.Logger
}

func NewDatabaseHandler(catalogService CatalogService, chats ChatStore, log zerolog.Logger) *DatabaseHandler {
	return &DatabaseHandler{
		catalog: catalogService,
		chats:   chats,
		log:     log.With().Str("handler", "database").Logger(),
	}
}

// Dispatch routes one database action. Product actions are verb-category
// pairs like "get-laptops" or "update-accessory"; the category half accepts
// both singular and plural spellings.
func (h *DatabaseHandler) Dispatch(reqCtx *gin.Context) {
	var req requests.ProxyRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "action is required")
		return
	}

	switch req.Action {
	case "list-tables":
		h.listTables(reqCtx)
		return
	case "describe-table":
		h.describeTable(reqCtx, req.Data)
		return
	case "get-chats":
		h.getChats(reqCtx)
		return
	case "send-message":
		h.sendMessage(reqCtx, req.Data)
		return
	}

	verb, category, ok := splitProductAction(req.Action)
	if !ok {
		metrics.RecordProxyAction("database", req.Action, "unknown")
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown action %q", req.Action))
		return
	}

	switch verb {
	case "get":
		h.listProducts(reqCtx, req.Action, category)
	case "add":
		h.addProduct(reqCtx, req.Action, category, req.Data)
	case "update":
		h.updateProduct(reqCtx, req.Action, category, req.Data)
	case "delete":
		h.deleteProduct(reqCtx, req.Action, category, req.Data)
	default:
		metrics.RecordProxyAction("database", req.Action, "unknown")
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown action %q", req.Action))
	}
}

// splitProductAction parses "verb-category" actions. Plural category
// spellings normalize to the singular table tag.
func splitProductAction(action string) (string, catalog.Category, bool) {
	verb, rest, found := strings.Cut(action, "-")
	if !found {
		return "", "", false
	}
	if category, ok := catalog.ParseCategory(singularize(rest)); ok {
		return verb, category, true
	}
	return "", "", false
}

func singularize(s string) string {
	s = strings.ToLower(s)
	if strings.HasSuffix(s, "ies") {
		return strings.TrimSuffix(s, "ies") + "y"
	}
	return strings.TrimSuffix(s, "s")
}

func (h *DatabaseHandler) listTables(reqCtx *gin.Context) {
	tables, err := h.catalog.ListTables(reqCtx.Request.Context())
	if err != nil {
		metrics.RecordProxyAction("database", "list-tables", "error")
		responses.HandleError(reqCtx, err, "table listing failed")
		return
	}
	metrics.RecordProxyAction("database", "list-tables", "success")
	responses.Success(reqCtx, tables)
}

func (h *DatabaseHandler) describeTable(reqCtx *gin.Context, raw json.RawMessage) {
	var data requests.TableData
	if err := json.Unmarshal(raw, &data); err != nil || data.Table == "" {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "table is required")
		return
	}

	columns, err := h.catalog.DescribeTable(reqCtx.Request.Context(), data.Table)
	if err != nil {
		metrics.RecordProxyAction("database", "describe-table", "error")
		responses.HandleError(reqCtx, err, "table description failed")
		return
	}
	metrics.RecordProxyAction("database", "describe-table", "success")
	responses.Success(reqCtx, columns)
}

func (h *DatabaseHandler) getChats(reqCtx *gin.Context) {
	contacts, err := h.chats.ListContacts(reqCtx.Request.Context())
	if err != nil {
		metrics.RecordProxyAction("database", "get-chats", "error")
		responses.HandleError(reqCtx, err, "chat listing failed")
		return
	}
	metrics.RecordProxyAction("database", "get-chats", "success")
	responses.Success(reqCtx, contacts)
}

func (h *DatabaseHandler) sendMessage(reqCtx *gin.Context, raw json.RawMessage) {
	var data requests.SendMessageData
	if err := json.Unmarshal(raw, &data); err != nil || data.ContactUID == "" || data.Message == "" {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "contact_uid and message are required")
		return
	}

	message, err := h.chats.RecordOutbound(reqCtx.Request.Context(), data.ContactUID, data.Message)
	if err != nil {
		metrics.RecordProxyAction("database", "send-message", "error")
		h.log.Error().Err(err).Str("contact_uid", data.ContactUID).Msg("record outbound message failed")
		responses.HandleError(reqCtx, err, "message could not be recorded")
		return
	}
	metrics.RecordProxyAction("database", "send-message", "success")
	responses.Success(reqCtx, message)
}

func (h *DatabaseHandler) listProducts(reqCtx *gin.Context, action string, category catalog.Category) {
	products, err := h.catalog.List(reqCtx.Request.Context(), category)
	if err != nil {
		metrics.RecordProxyAction("database", action, "error")
		responses.HandleError(reqCtx, err, "product listing failed")
		return
	}
	metrics.RecordProxyAction("database", action, "success")
	responses.Success(reqCtx, products)
}

func (h *DatabaseHandler) addProduct(reqCtx *gin.Context, action string, category catalog.Category, raw json.RawMessage) {
	product, ok := h.bindProduct(reqCtx, category, raw)
	if !ok {
		return
	}

	if err := h.catalog.Create(reqCtx.Request.Context(), product); err != nil {
		metrics.RecordProxyAction("database", action, "error")
		responses.HandleError(reqCtx, err, "product create failed")
		return
	}
	metrics.RecordProxyAction("database", action, "success")
	responses.Success(reqCtx, product)
}

func (h *DatabaseHandler) updateProduct(reqCtx *gin.Context, action string, category catalog.Category, raw json.RawMessage) {
	product, ok := h.bindProduct(reqCtx, category, raw)
	if !ok {
		return
	}

	if err := h.catalog.Update(reqCtx.Request.Context(), product); err != nil {
		metrics.RecordProxyAction("database", action, "error")
		responses.HandleError(reqCtx, err, "product update failed")
		return
	}
	metrics.RecordProxyAction("database", action, "success")
	responses.Success(reqCtx, product)
}

func (h *DatabaseHandler) deleteProduct(reqCtx *gin.Context, action string, category catalog.Category, raw json.RawMessage) {
	var data requests.RecordData
	if err := json.Unmarshal(raw, &data); err != nil || data.ID == 0 {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "id is required")
		return
	}

	if err := h.catalog.Delete(reqCtx.Request.Context(), category, data.ID); err != nil {
		metrics.RecordProxyAction("database", action, "error")
		responses.HandleError(reqCtx, err, "product delete failed")
		return
	}
	metrics.RecordProxyAction("database", action, "success")
	responses.Success(reqCtx, gin.H{"id": data.ID})
}

func (h *DatabaseHandler) bindProduct(reqCtx *gin.Context, category catalog.Category, raw json.RawMessage) (*catalog.Product, bool) {
	var product catalog.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "product payload is invalid")
		return nil, false
	}
	// The action name, not the payload, decides the table.
	product.Category = category
	return &product, true
}
