package chatlist

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"salesdesk/admin-api/internal/utils/functional"
)

// DateFilter restricts contacts by the age encoded in their relative-time label.
type DateFilter string

const (
	DateAll   DateFilter = "all"
	DateToday DateFilter = "today"
	DateWeek  DateFilter = "week"
	DateMonth DateFilter = "month"
)

// UnreadFilter restricts contacts by unread count.
type UnreadFilter string

const (
	UnreadAll  UnreadFilter = "all"
	UnreadOnly UnreadFilter = "unread"
	ReadOnly   UnreadFilter = "read"
)

// SortOption orders the filtered contact list.
type SortOption string

const (
	SortDateDesc SortOption = "date-desc"
	SortDateAsc  SortOption = "date-asc"
	SortUnread   SortOption = "unread"
	SortNameAsc  SortOption = "name-asc"
	SortNameDesc SortOption = "name-desc"
)

// Filters is the full filter/sort state of the conversation list.
type Filters struct {
	Search string       `form:"search"`
	Date   DateFilter   `form:"date"`
	Unread UnreadFilter `form:"unread"`
	Sort   SortOption   `form:"sort"`
}

// DefaultFilters returns the neutral filter state.
func DefaultFilters() Filters {
	return Filters{Date: DateAll, Unread: UnreadAll, Sort: SortDateDesc}
}

// Normalize fills empty fields with defaults so partially bound query
// parameters behave like the neutral state.
func (f *Filters) Normalize() {
	if f.Date == "" {
		f.Date = DateAll
	}
	if f.Unread == "" {
		f.Unread = UnreadAll
	}
	if f.Sort == "" {
		f.Sort = SortDateDesc
	}
}

// Active reports whether any filter differs from the defaults. The sort
// choice does not count as an active filter.
func (f Filters) Active() bool {
	return f.Date != DateAll || f.Unread != UnreadAll
}

// Reset restores date, unread and sort to their defaults.
func (f *Filters) Reset() {
	f.Date = DateAll
	f.Unread = UnreadAll
	f.Sort = SortDateDesc
}

// Apply filters and sorts a contact list. The input slice is not mutated and
// contacts pass through unchanged; only membership and order vary.
func Apply(contacts []Contact, f Filters, now time.Time) []Contact {
	f.Normalize()

	result := functional.Filter(contacts, func(c Contact) bool {
		return matchesSearch(c, f.Search) && matchesUnread(c, f.Unread) && matchesDate(c.Time, f.Date)
	})

	sortContacts(result, f.Sort, now)
	return result
}

func matchesSearch(c Contact, term string) bool {
	if term == "" {
		return true
	}
	lowered := strings.ToLower(term)
	// Name and message match case-insensitively; phone is a literal
	// substring match.
	return strings.Contains(strings.ToLower(c.Name), lowered) ||
		strings.Contains(strings.ToLower(c.LastMessage), lowered) ||
		strings.Contains(c.Phone, term)
}

func matchesUnread(c Contact, filter UnreadFilter) bool {
	switch filter {
	case UnreadOnly:
		return c.Unread > 0
	case ReadOnly:
		return c.Unread == 0
	default:
		return true
	}
}

// matchesDate reproduces the label heuristics of the original list: the
// relative-time label is the only signal, so "today" admits minute/hour
// labels, and week/month bounds apply only to "d ago" labels. Absolute date
// strings are never excluded by week/month.
func matchesDate(label string, filter DateFilter) bool {
	switch filter {
	case DateToday:
		return strings.Contains(label, "m ago") ||
			strings.Contains(label, "h ago") ||
			label == "Just now"
	case DateWeek:
		return withinDays(label, 7)
	case DateMonth:
		return withinDays(label, 30)
	default:
		return true
	}
}

func withinDays(label string, limit int) bool {
	if !strings.Contains(label, "d ago") {
		return true
	}
	days, ok := leadingInt(label)
	if !ok {
		return true
	}
	return days <= limit
}

func leadingInt(s string) (int, bool) {
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	return n, seen
}

// ParseRelativeTime converts a relative-time label to an epoch-milliseconds
// estimate for sorting. "Just now" maps to now, "Nm/Nh/Nd ago" to now minus
// the corresponding duration, and anything else is attempted as an absolute
// date, defaulting to 0 on failure.
func ParseRelativeTime(label string, now time.Time) int64 {
	if label == "Just now" {
		return now.UnixMilli()
	}

	if n, ok := leadingInt(label); ok {
		switch {
		case strings.Contains(label, "m ago"):
			return now.Add(-time.Duration(n) * time.Minute).UnixMilli()
		case strings.Contains(label, "h ago"):
			return now.Add(-time.Duration(n) * time.Hour).UnixMilli()
		case strings.Contains(label, "d ago"):
			return now.Add(-time.Duration(n) * 24 * time.Hour).UnixMilli()
		}
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02",
		"Jan 2, 2006",
		"January 2, 2006",
	} {
		if ts, err := time.Parse(layout, label); err == nil {
			return ts.UnixMilli()
		}
	}
	return 0
}

func sortContacts(contacts []Contact, option SortOption, now time.Time) {
	switch option {
	case SortDateAsc:
		sort.SliceStable(contacts, func(i, j int) bool {
			return ParseRelativeTime(contacts[i].Time, now) < ParseRelativeTime(contacts[j].Time, now)
		})
	case SortUnread:
		sort.SliceStable(contacts, func(i, j int) bool {
			return contacts[i].Unread > contacts[j].Unread
		})
	case SortNameAsc, SortNameDesc:
		coll := collate.New(language.English)
		sort.SliceStable(contacts, func(i, j int) bool {
			cmp := coll.CompareString(contacts[i].Name, contacts[j].Name)
			if option == SortNameDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	default: // SortDateDesc
		sort.SliceStable(contacts, func(i, j int) bool {
			return ParseRelativeTime(contacts[i].Time, now) > ParseRelativeTime(contacts[j].Time, now)
		})
	}
}
