package responses

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProxyEnvelope is the success envelope every proxy endpoint returns: a
// success flag plus the relayed or locally produced payload. Failures use
// ErrorResponse instead.
type ProxyEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// RelaySuccess wraps an upstream payload in the success envelope.
func RelaySuccess(reqCtx *gin.Context, payload json.RawMessage) {
	if len(payload) == 0 {
		payload = json.RawMessage(`null`)
	}
	reqCtx.JSON(http.StatusOK, ProxyEnvelope{Success: true, Data: payload})
}

// Success marshals a locally produced value into the success envelope.
func Success(reqCtx *gin.Context, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		HandleError(reqCtx, err, "failed to encode response")
		return
	}
	reqCtx.JSON(http.StatusOK, ProxyEnvelope{Success: true, Data: payload})
}

// LoginResponse carries the issued session token and its lifetime.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
