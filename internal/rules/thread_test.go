package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/synergysphere/synergysphere/internal/models"
)

func msgAt(id uint, at time.Time) models.Message {
	return models.Message{BaseModel: models.BaseModel{ID: id, CreatedAt: at}}
}

func ids(messages []models.Message) []uint {
	out := make([]uint, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ID)
	}
	return out
}

func TestOrderThreads(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	first := msgAt(1, base)
	first.Replies = []models.Message{
		msgAt(12, base.Add(3*time.Minute)),
		msgAt(11, base.Add(time.Minute)),
		msgAt(13, base.Add(2*time.Minute)),
	}
	second := msgAt(2, base.Add(time.Hour))
	third := msgAt(3, base.Add(30*time.Minute))

	threads := []models.Message{first, second, third}
	OrderThreads(threads)

	assert.Equal(t, []uint{2, 3, 1}, ids(threads), "top level newest first")
	assert.Equal(t, []uint{11, 13, 12}, ids(threads[2].Replies), "replies oldest first")
}

func TestOrderThreads_TieBreaksOnID(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	threads := []models.Message{msgAt(1, at), msgAt(3, at), msgAt(2, at)}
	OrderThreads(threads)
	assert.Equal(t, []uint{3, 2, 1}, ids(threads))

	replies := []models.Message{msgAt(6, at), msgAt(4, at), msgAt(5, at)}
	OrderReplies(replies)
	assert.Equal(t, []uint{4, 5, 6}, ids(replies))
}

func TestNewThread(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := msgAt(1, base)
	m.Replies = []models.Message{msgAt(3, base.Add(2*time.Second)), msgAt(2, base.Add(time.Second))}

	thread := NewThread(m)

	assert.Equal(t, uint(1), thread.Message.ID)
	assert.Nil(t, thread.Message.Replies)
	assert.Equal(t, []uint{2, 3}, ids(thread.Replies))
	assert.Equal(t, []uint{3, 2}, ids(m.Replies), "input left untouched")
}
