package app

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Waveroom/internal/core"
	"github.com/dkeye/Waveroom/internal/domain"
)

// RoomCounter is the slice of the directory the gateway needs: advisory
// occupancy bookkeeping only.
type RoomCounter interface {
	AddParticipant(domain.RoomID)
	RemoveParticipant(domain.RoomID)
}

// ChatStore is the slice of the history store the gateway needs.
type ChatStore interface {
	Append(domain.ChatMessage) error
	ClearRoom(domain.RoomID)
}

// Gateway routes transport events into the directory and history store and
// fans results back out to broadcast groups. All methods are fire-and-forget;
// faults are logged, never surfaced to the connection.
type Gateway struct {
	Groups *Groups
	Rooms  RoomCounter
	Chat   ChatStore
}

func NewGateway(groups *Groups, rooms RoomCounter, chat ChatStore) *Gateway {
	return &Gateway{Groups: groups, Rooms: rooms, Chat: chat}
}

// JoinRoom attaches the connection to the room's broadcast group. There is
// deliberately no existence check against the directory.
func (gw *Gateway) JoinRoom(sid core.SessionID, room domain.RoomID, conn core.SignalConnection) {
	if gw.Groups.Join(sid, room, conn) {
		gw.Rooms.AddParticipant(room)
	}
}

// chatEnvelope is the server->client frame for a relayed message.
type chatEnvelope struct {
	Type string `json:"type"`
	domain.ChatMessage
}

// OnChat persists the message and then broadcasts it to the room, sender
// included. A persistence fault must not prevent the broadcast.
func (gw *Gateway) OnChat(sid core.SessionID, msg domain.ChatMessage) {
	if msg.Time == 0 {
		msg.Time = time.Now().UnixMilli()
	}
	track, image := ExtractAttachments(msg.Text)
	if msg.TrackURL == "" {
		msg.TrackURL = track
	}
	if msg.ImageURL == "" {
		msg.ImageURL = image
	}

	if err := gw.Chat.Append(msg); err != nil {
		log.Warn().Err(err).Str("module", "app.gateway").Str("sid", string(sid)).Str("room", string(msg.Room)).Msg("chat persist failed")
	}

	frame, err := json.Marshal(chatEnvelope{Type: "chat:message", ChatMessage: msg})
	if err != nil {
		log.Error().Err(err).Str("module", "app.gateway").Msg("chat marshal failed")
		return
	}
	gw.Groups.Broadcast(msg.Room, frame)
}

// OnDisconnect removes the connection from all its groups and clears the
// chat history of every room left empty by the departure. The size check
// runs after removal but is not atomic against a near-simultaneous rejoin;
// in that case history is simply cleared a bit late, which is acceptable.
func (gw *Gateway) OnDisconnect(sid core.SessionID) {
	for _, room := range gw.Groups.Drop(sid) {
		gw.Rooms.RemoveParticipant(room)
		if gw.Groups.Size(room) == 0 {
			gw.Chat.ClearRoom(room)
		}
	}
	log.Info().Str("module", "app.gateway").Str("sid", string(sid)).Msg("disconnected")
}
