package conversation

import (
	"time"
)

// Role identifies the sender of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one immutable chat message in a conversation thread.
type Message struct {
	ID         string    `json:"id"`
	ContactUID string    `json:"contact_uid"`
	Role       Role      `json:"role"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// DayGroup is a run of messages sharing a calendar day, oldest first.
type DayGroup struct {
	Day      string    `json:"day"`
	Messages []Message `json:"messages"`
}

// GroupByDay partitions messages by calendar day for display. Messages are
// assumed ordered by timestamp; groups preserve that order.
func GroupByDay(messages []Message) []DayGroup {
	var groups []DayGroup
	for _, msg := range messages {
		day := msg.CreatedAt.Format("2006-01-02")
		if len(groups) == 0 || groups[len(groups)-1].Day != day {
			groups = append(groups, DayGroup{Day: day})
		}
		last := &groups[len(groups)-1]
		last.Messages = append(last.Messages, msg)
	}
	return groups
}
