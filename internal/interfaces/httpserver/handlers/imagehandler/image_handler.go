package imagehandler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"salesdesk/admin-api/internal/infrastructure/imagehost"
	"salesdesk/admin-api/internal/infrastructure/metrics"
	"salesdesk/admin-api/internal/interfaces/httpserver/requests"
	"salesdesk/admin-api/internal/interfaces/httpserver/responses"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

// ImageHost is the slice of the image host client the handler uses.
type ImageHost interface {
	Upload(ctx context.Context, fileName string, data []byte) (*imagehost.Asset, error)
	List(ctx context.Context) ([]imagehost.Asset, error)
	Delete(ctx context.Context, publicID string) error
	Rename(ctx context.Context, fromPublicID, toName string) (*imagehost.Asset, error)
}

type ImageHandler struct {
	host ImageHost
	log  zerolog.Logger
}

func NewImageHandler(host ImageHost, log zerolog.Logger) *ImageHandler {
	return &ImageHandler{
		host: host,
		log:  log.With().Str("handler", "image").Logger(),
	}
}

// Dispatch routes one image action to the hosting provider.
func (h *ImageHandler) Dispatch(reqCtx *gin.Context) {
	var req requests.ProxyRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "action is required")
		return
	}

	switch req.Action {
	case "upload":
		h.upload(reqCtx, req.Data)
	case "list":
		h.list(reqCtx)
	case "delete":
		h.delete(reqCtx, req.Data)
	case "rename":
		h.rename(reqCtx, req.Data)
	default:
		metrics.RecordProxyAction("image", req.Action, "unknown")
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown action %q", req.Action))
	}
}

func (h *ImageHandler) upload(reqCtx *gin.Context, raw json.RawMessage) {
	var data requests.ImageUploadData
	if err := json.Unmarshal(raw, &data); err != nil || data.FileName == "" || data.Content == "" {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "file_name and content are required")
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(data.Content)
	if err != nil {
		metrics.RecordImageUpload("invalid_encoding")
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "content is not valid base64")
		return
	}

	asset, err := h.host.Upload(reqCtx.Request.Context(), data.FileName, decoded)
	if err != nil {
		outcome := "error"
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
			outcome = "rejected"
		}
		metrics.RecordImageUpload(outcome)
		h.log.Error().Err(err).Str("file_name", data.FileName).Msg("image upload failed")
		responses.HandleError(reqCtx, err, "image upload failed")
		return
	}

	metrics.RecordImageUpload("success")
	metrics.RecordProxyAction("image", "upload", "success")
	responses.Success(reqCtx, asset)
}

func (h *ImageHandler) list(reqCtx *gin.Context) {
	assets, err := h.host.List(reqCtx.Request.Context())
	if err != nil {
		metrics.RecordProxyAction("image", "list", "error")
		responses.HandleError(reqCtx, err, "image list failed")
		return
	}
	metrics.RecordProxyAction("image", "list", "success")
	responses.Success(reqCtx, assets)
}

func (h *ImageHandler) delete(reqCtx *gin.Context, raw json.RawMessage) {
	var data requests.ImageDeleteData
	if err := json.Unmarshal(raw, &data); err != nil || data.PublicID == "" {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "public_id is required")
		return
	}

	if err := h.host.Delete(reqCtx.Request.Context(), data.PublicID); err != nil {
		metrics.RecordProxyAction("image", "delete", "error")
		responses.HandleError(reqCtx, err, "image delete failed")
		return
	}
	metrics.RecordProxyAction("image", "delete", "success")
	responses.Success(reqCtx, gin.H{"public_id": data.PublicID})
}

func (h *ImageHandler) rename(reqCtx *gin.Context, raw json.RawMessage) {
	var data requests.ImageRenameData
	if err := json.Unmarshal(raw, &data); err != nil || data.FromPublicID == "" || data.ToName == "" {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "from_public_id and to_name are required")
		return
	}

	asset, err := h.host.Rename(reqCtx.Request.Context(), data.FromPublicID, data.ToName)
	if err != nil {
		metrics.RecordProxyAction("image", "rename", "error")
		responses.HandleError(reqCtx, err, "image rename failed")
		return
	}
	metrics.RecordProxyAction("image", "rename", "success")
	responses.Success(reqCtx, asset)
}
