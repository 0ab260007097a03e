package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salesdesk/admin-api/internal/utils/platformerrors"
)

func TestSendMessageAuth(t *testing.T) {
	var gotAuth, gotToken string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotToken = r.URL.Query().Get("token")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bearer-tok", "query-tok", time.Minute)
	if err := client.SendMessage(context.Background(), "wa-1", "hi"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if gotAuth != "Bearer bearer-tok" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotToken != "query-tok" {
		t.Fatalf("token query param = %q", gotToken)
	}
	if gotBody["to"] != "wa-1" || gotBody["message"] != "hi" {
		t.Fatalf("body = %v", gotBody)
	}
}

func TestGetContactsCachesWithinTTL(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"contacts": []map[string]string{{"wa_id": "wa-1", "name": "Alice"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok", "", time.Minute)

	for i := 0; i < 3; i++ {
		contacts, err := client.GetContacts(context.Background())
		if err != nil {
			t.Fatalf("get contacts failed: %v", err)
		}
		if len(contacts) != 1 || contacts[0].WaID != "wa-1" {
			t.Fatalf("contacts = %+v", contacts)
		}
	}

	if calls != 1 {
		t.Fatalf("upstream called %d times, want 1", calls)
	}
}

func TestGetContactsRefetchesAfterExpiry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{"contacts": []map[string]string{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok", "", 10*time.Millisecond)

	client.GetContacts(context.Background())
	time.Sleep(30 * time.Millisecond)
	client.GetContacts(context.Background())

	if calls != 2 {
		t.Fatalf("upstream called %d times, want 2", calls)
	}
}

func TestGetContactNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok", "", time.Minute)
	if _, err := client.GetContact(context.Background(), "nope"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestSendMessageUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok", "", time.Minute)
	if err := client.SendMessage(context.Background(), "wa-1", "hi"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUpstream) {
		t.Fatalf("got %v, want upstream error", err)
	}
}
