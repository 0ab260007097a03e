package conversation

import (
	"testing"
	"time"
)

func msg(id string, ts time.Time) Message {
	return Message{ID: id, ContactUID: "c1", Role: RoleUser, Body: "hi", CreatedAt: ts}
}

func TestGroupByDay(t *testing.T) {
	day1 := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	groups := GroupByDay([]Message{
		msg("m1", day1),
		msg("m2", day1.Add(2*time.Hour)),
		msg("m3", day2),
	})

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Day != "2025-06-14" || len(groups[0].Messages) != 2 {
		t.Fatalf("first group = %+v", groups[0])
	}
	if groups[1].Day != "2025-06-15" || len(groups[1].Messages) != 1 {
		t.Fatalf("second group = %+v", groups[1])
	}
	if groups[0].Messages[0].ID != "m1" || groups[0].Messages[1].ID != "m2" {
		t.Fatalf("order not preserved: %+v", groups[0].Messages)
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if groups := GroupByDay(nil); len(groups) != 0 {
		t.Fatalf("got %d groups for empty input", len(groups))
	}
}

func TestGroupByDayNonAdjacentSameDay(t *testing.T) {
	day1 := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	// Out-of-order input produces a new group per run, not a merge. Callers
	// pass timestamp-ordered messages.
	groups := GroupByDay([]Message{msg("a", day1), msg("b", day2), msg("c", day1)})
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
}
