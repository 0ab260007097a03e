package authhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"salesdesk/admin-api/internal/domain/session"
	"salesdesk/admin-api/internal/interfaces/httpserver/middlewares"
	"salesdesk/admin-api/internal/interfaces/httpserver/requests"
	"salesdesk/admin-api/internal/interfaces/httpserver/responses"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

type AuthHandler struct {
	sessions *session.Manager
	log      zerolog.Logger
}

func NewAuthHandler(sessions *session.Manager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Login checks the admin credential pair and issues a session token. The
// token is returned in the body and also set as a cookie for browser clients.
func (h *AuthHandler) Login(reqCtx *gin.Context) {
	var req requests.LoginRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "username and password are required")
		return
	}

	token, err := h.sessions.Login(reqCtx.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.log.Warn().Str("username", req.Username).Msg("login rejected")
		responses.HandleError(reqCtx, err, "invalid credentials")
		return
	}

	ttl := h.sessions.TTL()
	reqCtx.SetCookie(session.CookieName, token, int(ttl.Seconds()), "/", "", false, true)
	reqCtx.JSON(http.StatusOK, responses.LoginResponse{
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
	})
}

// Logout clears the session cookie. Tokens are not revocable; the cookie
// removal is all a logout does.
func (h *AuthHandler) Logout(reqCtx *gin.Context) {
	reqCtx.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	reqCtx.Status(http.StatusNoContent)
}

// Me returns the authenticated admin identity.
func (h *AuthHandler) Me(reqCtx *gin.Context) {
	username, ok := middlewares.SessionUserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required")
		return
	}
	reqCtx.JSON(http.StatusOK, gin.H{"username": username})
}
