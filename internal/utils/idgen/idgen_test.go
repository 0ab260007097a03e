package idgen

import (
	"sort"
	"strings"
	"testing"
)

func TestNewPrefixesAndLowercases(t *testing.T) {
	id := New("msg")
	if !strings.HasPrefix(id, "msg_") {
		t.Fatalf("id = %q", id)
	}
	if id != strings.ToLower(id) {
		t.Fatalf("id not lowercase: %q", id)
	}
}

func TestNewIsMonotonicWithinProcess(t *testing.T) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = New("msg")
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	for i := range ids {
		if ids[i] != sorted[i] {
			t.Fatalf("ids not monotonic at %d: %q vs %q", i, ids[i], sorted[i])
		}
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewConcurrentIDsAreUnique(t *testing.T) {
	const workers = 8
	const perWorker = 200

	results := make(chan []string, workers)
	for w := 0; w < workers; w++ {
		go func() {
			ids := make([]string, perWorker)
			for i := range ids {
				ids[i] = New("msg")
			}
			results <- ids
		}()
	}

	seen := make(map[string]bool, workers*perWorker)
	for w := 0; w < workers; w++ {
		for _, id := range <-results {
			if seen[id] {
				t.Fatalf("duplicate id %q", id)
			}
			seen[id] = true
		}
	}
}

func TestNewMessageID(t *testing.T) {
	if !strings.HasPrefix(NewMessageID(), "msg_") {
		t.Fatal("message ids must carry the msg prefix")
	}
}
