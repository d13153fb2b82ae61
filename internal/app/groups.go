package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Waveroom/internal/core"
	"github.com/dkeye/Waveroom/internal/domain"
)

// Groups owns the authoritative per-room membership sets. This, not the
// directory's advisory participant counter, decides whether a room is empty.
// Joining a room that the directory has never heard of is fine — it just
// creates an empty broadcast group.
type Groups struct {
	mu      sync.RWMutex
	members map[domain.RoomID]map[core.SessionID]core.SignalConnection
	joined  map[core.SessionID]map[domain.RoomID]struct{}
}

func NewGroups() *Groups {
	return &Groups{
		members: make(map[domain.RoomID]map[core.SessionID]core.SignalConnection),
		joined:  make(map[core.SessionID]map[domain.RoomID]struct{}),
	}
}

// Join attaches a connection to a room's broadcast group. Re-joining the
// same room is a no-op for membership, but the stored connection is
// refreshed so frames always go to the socket that is actually alive.
func (g *Groups) Join(sid core.SessionID, room domain.RoomID, conn core.SignalConnection) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.joined[sid][room]; ok {
		g.members[room][sid] = conn
		return false
	}
	if g.members[room] == nil {
		g.members[room] = make(map[core.SessionID]core.SignalConnection)
	}
	g.members[room][sid] = conn
	if g.joined[sid] == nil {
		g.joined[sid] = make(map[domain.RoomID]struct{})
	}
	g.joined[sid][room] = struct{}{}
	log.Info().Str("module", "app.groups").Str("sid", string(sid)).Str("room", string(room)).Msg("member joined")
	return true
}

// Drop removes the connection from every group it belonged to and returns
// those rooms so the caller can run its post-disconnect checks.
func (g *Groups) Drop(sid core.SessionID) []domain.RoomID {
	g.mu.Lock()
	defer g.mu.Unlock()
	rooms := make([]domain.RoomID, 0, len(g.joined[sid]))
	for room := range g.joined[sid] {
		delete(g.members[room], sid)
		if len(g.members[room]) == 0 {
			delete(g.members, room)
		}
		rooms = append(rooms, room)
	}
	delete(g.joined, sid)
	return rooms
}

// Size reports the current broadcast-group size for a room.
func (g *Groups) Size(room domain.RoomID) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.members[room])
}

// Broadcast fans a frame out to every member of the room, the sender
// included. TrySend never blocks; slow consumers just drop the frame.
func (g *Groups) Broadcast(room domain.RoomID, data core.Frame) core.PublishResult {
	g.mu.RLock()
	defer g.mu.RUnlock()
	res := core.PublishResult{}
	for _, conn := range g.members[room] {
		if err := conn.TrySend(data); err != nil {
			res.Dropped++
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "app.groups").Str("room", string(room)).Int("sent_to", res.SentTo).Int("dropped", res.Dropped).Msg("broadcast result")
	return res
}
