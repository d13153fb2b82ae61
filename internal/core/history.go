package core

import (
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Waveroom/internal/domain"
)

// MaxMessagesPerRoom bounds each room's log; the oldest entries are evicted
// first once the cap is exceeded.
const MaxMessagesPerRoom = 500

// History holds per-room chat logs. Logs live only while the room is
// occupied: the gateway calls ClearRoom when the last member disconnects,
// even though the room record itself stays in the directory.
type History struct {
	mu     sync.Mutex
	byRoom map[domain.RoomID][]domain.ChatMessage
}

func NewHistory() *History {
	return &History{byRoom: make(map[domain.RoomID][]domain.ChatMessage)}
}

// Append stores a message, implicitly creating the room's log. Text must be
// non-empty after trimming.
func (h *History) Append(msg domain.ChatMessage) error {
	if strings.TrimSpace(msg.Text) == "" {
		return domain.ErrEmptyMessage
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	list := append(h.byRoom[msg.Room], msg)
	for len(list) > MaxMessagesPerRoom {
		list = list[1:]
	}
	h.byRoom[msg.Room] = list
	return nil
}

// Messages returns the room's log in insertion order. Empty history is a
// valid state, never an error.
func (h *History) Messages(room domain.RoomID) []domain.ChatMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.byRoom[room]
	out := make([]domain.ChatMessage, len(list))
	copy(out, list)
	return out
}

// ClearRoom drops the entire log for a room. Idempotent.
func (h *History) ClearRoom(room domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.byRoom, room)
	log.Info().Str("module", "core.history").Str("room", string(room)).Msg("cleared chat history")
}
