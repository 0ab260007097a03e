package chatlist

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func sampleContacts() []Contact {
	return []Contact{
		{UID: "c1", Name: "Alice Nguyen", Phone: "+84901234567", LastMessage: "Is the laptop still available?", Time: "5m ago", Unread: 2},
		{UID: "c2", Name: "Bob Tran", Phone: "+84907654321", LastMessage: "Thanks, order received", Time: "3h ago", Unread: 0},
		{UID: "c3", Name: "Carol Pham", Phone: "+84912345678", LastMessage: "Do you ship to Hanoi?", Time: "2d ago", Unread: 1},
		{UID: "c4", Name: "Dan Le", Phone: "+84923456789", LastMessage: "Price for the desktop?", Time: "12d ago", Unread: 0},
		{UID: "c5", Name: "Eve Vo", Phone: "+84934567890", LastMessage: "See you", Time: "Jan 2, 2025", Unread: 5},
	}
}

func uids(contacts []Contact) []string {
	out := make([]string, len(contacts))
	for i, c := range contacts {
		out[i] = c.UID
	}
	return out
}

func assertUIDs(t *testing.T, got []Contact, want ...string) {
	t.Helper()
	gotIDs := uids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, gotIDs, want)
		}
	}
}

func TestApplyDefaultsPassEverythingThrough(t *testing.T) {
	got := Apply(sampleContacts(), DefaultFilters(), testNow)
	assertUIDs(t, got, "c1", "c2", "c3", "c4", "c5")
}

func TestApplySearch(t *testing.T) {
	cases := []struct {
		name string
		term string
		want []string
	}{
		{"name case-insensitive", "alice", []string{"c1"}},
		{"message substring", "ship", []string{"c3"}},
		{"phone literal", "8490", []string{"c1", "c2"}},
		{"no match", "zzz", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := DefaultFilters()
			f.Search = tc.term
			got := Apply(sampleContacts(), f, testNow)
			assertUIDs(t, got, tc.want...)
		})
	}
}

func TestApplyDateFilter(t *testing.T) {
	cases := []struct {
		name   string
		filter DateFilter
		want   []string
	}{
		{"today keeps minute and hour labels", DateToday, []string{"c1", "c2"}},
		{"week keeps labels up to 7d, absolute dates pass", DateWeek, []string{"c1", "c2", "c3", "c5"}},
		{"month keeps labels up to 30d", DateMonth, []string{"c1", "c2", "c3", "c4", "c5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := DefaultFilters()
			f.Date = tc.filter
			got := Apply(sampleContacts(), f, testNow)
			assertUIDs(t, got, tc.want...)
		})
	}
}

func TestApplyUnreadFilter(t *testing.T) {
	f := DefaultFilters()
	f.Unread = UnreadOnly
	assertUIDs(t, Apply(sampleContacts(), f, testNow), "c1", "c3", "c5")

	f.Unread = ReadOnly
	assertUIDs(t, Apply(sampleContacts(), f, testNow), "c2", "c4")
}

func TestApplySort(t *testing.T) {
	cases := []struct {
		name string
		sort SortOption
		want []string
	}{
		{"date descending", SortDateDesc, []string{"c1", "c2", "c3", "c4", "c5"}},
		{"date ascending", SortDateAsc, []string{"c5", "c4", "c3", "c2", "c1"}},
		{"unread first", SortUnread, []string{"c5", "c1", "c3", "c2", "c4"}},
		{"name ascending", SortNameAsc, []string{"c1", "c2", "c3", "c4", "c5"}},
		{"name descending", SortNameDesc, []string{"c5", "c4", "c3", "c2", "c1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := DefaultFilters()
			f.Sort = tc.sort
			got := Apply(sampleContacts(), f, testNow)
			assertUIDs(t, got, tc.want...)
		})
	}
}

func TestApplyCombinedFilterAndSort(t *testing.T) {
	f := Filters{Search: "", Date: DateWeek, Unread: UnreadOnly, Sort: SortNameAsc}
	got := Apply(sampleContacts(), f, testNow)
	assertUIDs(t, got, "c1", "c3", "c5")
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	contacts := sampleContacts()
	f := DefaultFilters()
	f.Sort = SortNameDesc
	Apply(contacts, f, testNow)
	assertUIDs(t, contacts, "c1", "c2", "c3", "c4", "c5")
}

func TestApplyPreservesContactFields(t *testing.T) {
	contacts := sampleContacts()
	got := Apply(contacts, DefaultFilters(), testNow)
	if got[0] != contacts[0] {
		t.Fatalf("contact altered by Apply: got %+v, want %+v", got[0], contacts[0])
	}
}

func TestFiltersActiveAndReset(t *testing.T) {
	f := DefaultFilters()
	if f.Active() {
		t.Fatal("default filters must not be active")
	}

	f.Sort = SortNameAsc
	if f.Active() {
		t.Fatal("sort choice must not count as an active filter")
	}

	f.Date = DateToday
	if !f.Active() {
		t.Fatal("date filter must be active")
	}

	f.Reset()
	if f.Active() || f.Sort != SortDateDesc {
		t.Fatalf("reset left filters at %+v", f)
	}
}

func TestParseRelativeTime(t *testing.T) {
	cases := []struct {
		label string
		want  int64
	}{
		{"Just now", testNow.UnixMilli()},
		{"5m ago", testNow.Add(-5 * time.Minute).UnixMilli()},
		{"3h ago", testNow.Add(-3 * time.Hour).UnixMilli()},
		{"2d ago", testNow.Add(-48 * time.Hour).UnixMilli()},
		{"2025-06-01", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{"Jan 2, 2025", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{"gibberish", 0},
	}
	for _, tc := range cases {
		if got := ParseRelativeTime(tc.label, testNow); got != tc.want {
			t.Fatalf("ParseRelativeTime(%q) = %d, want %d", tc.label, got, tc.want)
		}
	}
}

func TestNormalizeFillsEmptyFields(t *testing.T) {
	f := Filters{Search: "x"}
	f.Normalize()
	if f.Date != DateAll || f.Unread != UnreadAll || f.Sort != SortDateDesc {
		t.Fatalf("normalize produced %+v", f)
	}
}
