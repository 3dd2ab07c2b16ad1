package rules

import (
	"slices"

	"github.com/synergysphere/synergysphere/internal/models"
)

// Thread is a top-level message with its replies, oldest reply first.
type Thread struct {
	Message models.Message
	Replies []models.Message
}

func NewThread(m models.Message) Thread {
	replies := slices.Clone(m.Replies)
	OrderReplies(replies)
	m.Replies = nil
	return Thread{Message: m, Replies: replies}
}

// OrderThreads puts top-level messages newest first and each message's
// replies oldest first. Newest discussions surface first while every thread
// still reads chronologically.
func OrderThreads(messages []models.Message) {
	slices.SortStableFunc(messages, func(a, b models.Message) int {
		return -compareCreated(a, b)
	})
	for i := range messages {
		OrderReplies(messages[i].Replies)
	}
}

func OrderReplies(replies []models.Message) {
	slices.SortStableFunc(replies, compareCreated)
}

func compareCreated(a, b models.Message) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}
