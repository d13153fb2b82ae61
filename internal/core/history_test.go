package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/Waveroom/internal/domain"
)

func TestHistory_EmptyRoomYieldsEmptySlice(t *testing.T) {
	req := require.New(t)
	h := NewHistory()

	msgs := h.Messages("never-written")
	req.NotNil(msgs)
	req.Empty(msgs)
}

func TestHistory_AppendRejectsBlankText(t *testing.T) {
	req := require.New(t)
	h := NewHistory()

	err := h.Append(domain.ChatMessage{Room: "r1", Author: "a", Text: "   "})
	req.ErrorIs(err, domain.ErrEmptyMessage)
	req.Empty(h.Messages("r1"))
}

func TestHistory_SlidingWindowEvictsOldestFirst(t *testing.T) {
	req := require.New(t)
	h := NewHistory()

	for i := 0; i < MaxMessagesPerRoom+1; i++ {
		err := h.Append(domain.ChatMessage{Room: "r1", Author: "a", Text: fmt.Sprintf("msg %d", i)})
		req.NoError(err)
	}

	msgs := h.Messages("r1")
	req.Len(msgs, MaxMessagesPerRoom)
	// The single oldest message is gone; relative order is intact.
	req.Equal("msg 1", msgs[0].Text)
	req.Equal(fmt.Sprintf("msg %d", MaxMessagesPerRoom), msgs[len(msgs)-1].Text)
}

func TestHistory_LogsAreIsolatedPerRoom(t *testing.T) {
	req := require.New(t)
	h := NewHistory()

	req.NoError(h.Append(domain.ChatMessage{Room: "r1", Author: "a", Text: "hi"}))
	req.NoError(h.Append(domain.ChatMessage{Room: "r2", Author: "b", Text: "yo"}))

	req.Len(h.Messages("r1"), 1)
	req.Len(h.Messages("r2"), 1)
	req.Equal("hi", h.Messages("r1")[0].Text)
}

func TestHistory_ClearRoomIsIdempotent(t *testing.T) {
	req := require.New(t)
	h := NewHistory()

	req.NoError(h.Append(domain.ChatMessage{Room: "r1", Author: "a", Text: "hi"}))
	h.ClearRoom("r1")
	req.Empty(h.Messages("r1"))

	// Clearing an absent room is a no-op, not an error.
	h.ClearRoom("r1")
	h.ClearRoom("never-existed")
}
