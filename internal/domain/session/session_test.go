package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"salesdesk/admin-api/internal/utils/platformerrors"
)

func newTestManager() *Manager {
	return NewManager([]byte("test-secret-at-least-32-bytes-long"), time.Hour, "admin", "s3cret")
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	token, err := m.Login(ctx, "admin", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := m.Verify(ctx, token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Username != "admin" {
		t.Fatalf("claims.Username = %q", claims.Username)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	cases := []struct{ user, pass string }{
		{"admin", "wrong"},
		{"root", "s3cret"},
		{"", ""},
	}
	for _, tc := range cases {
		if _, err := m.Login(ctx, tc.user, tc.pass); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
			t.Fatalf("login(%q, %q) = %v, want unauthorized", tc.user, tc.pass, err)
		}
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	token, err := m.Login(ctx, "admin", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := m.Verify(ctx, tampered); err == nil {
		t.Fatal("tampered token accepted")
	}
}

func TestVerifyRejectsTokenFromOtherSecret(t *testing.T) {
	ctx := context.Background()
	other := NewManager([]byte("a-completely-different-signing-key"), time.Hour, "admin", "s3cret")

	token, err := other.Login(ctx, "admin", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := newTestManager().Verify(ctx, token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	ctx := context.Background()

	token, err := m.Login(ctx, "admin", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	m.now = time.Now
	if _, err := m.Verify(ctx, token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestManager()
	for _, token := range []string{"", "not-a-jwt", strings.Repeat("a.", 3)} {
		if _, err := m.Verify(context.Background(), token); err == nil {
			t.Fatalf("garbage token %q accepted", token)
		}
	}
}
