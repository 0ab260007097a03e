package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"salesdesk/admin-api/internal/domain/session"
)

func newSessionRouter(manager *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware(manager))
	router.GET("/protected", func(c *gin.Context) {
		username, _ := SessionUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"username": username})
	})
	return router
}

func testManager() *session.Manager {
	return session.NewManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour, "admin", "pw")
}

func TestSessionMiddlewareBearerToken(t *testing.T) {
	manager := testManager()
	token, err := manager.Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newSessionRouter(manager).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestSessionMiddlewareCookie(t *testing.T) {
	manager := testManager()
	token, err := manager.Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	rec := httptest.NewRecorder()
	newSessionRouter(manager).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSessionMiddlewareRejectsMissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	newSessionRouter(testManager()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSessionMiddlewareRejectsInvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	newSessionRouter(testManager()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSessionMiddlewareIgnoresNonBearerSchemes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic YWRtaW46cHc=")
	rec := httptest.NewRecorder()
	newSessionRouter(testManager()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
