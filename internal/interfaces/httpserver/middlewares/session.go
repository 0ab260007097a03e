package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"salesdesk/admin-api/internal/domain/session"
	"salesdesk/admin-api/internal/interfaces/httpserver/responses"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

const sessionUserKey = "session_user"

// SessionMiddleware validates the admin session token. The token is accepted
// either as a bearer Authorization header or as the session cookie.
func SessionMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(session.CookieName); err == nil {
				token = cookie
			}
		}
		if token == "" {
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
			return
		}

		claims, err := manager.Verify(c.Request.Context(), token)
		if err != nil {
			responses.HandleError(c, err, "invalid or expired session")
			return
		}

		c.Set(sessionUserKey, claims.Username)
		c.Next()
	}
}

// SessionUserFromContext returns the authenticated admin username, if any.
func SessionUserFromContext(c *gin.Context) (string, bool) {
	val, ok := c.Get(sessionUserKey)
	if !ok {
		return "", false
	}
	username, ok := val.(string)
	return username, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
