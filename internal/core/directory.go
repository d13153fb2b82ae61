package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Waveroom/internal/domain"
)

// Directory is the threadsafe in-memory room directory. Exactly one
// PlaybackState exists per room; both maps are mutated together.
// Nothing here deletes rooms on its own — rooms live until a collaborator
// explicitly removes them or the process exits.
type Directory struct {
	mu     sync.RWMutex
	rooms  map[domain.RoomID]*domain.Room
	states map[domain.RoomID]*domain.PlaybackState
}

func NewDirectory() *Directory {
	return &Directory{
		rooms:  make(map[domain.RoomID]*domain.Room),
		states: make(map[domain.RoomID]*domain.PlaybackState),
	}
}

// Create builds a room from an already-validated source and initializes its
// playback state atomically.
func (d *Directory) Create(src domain.Source) *domain.Room {
	room := &domain.Room{
		ID:             domain.RoomID(uuid.NewString()),
		Kind:           src.Kind,
		YoutubeURL:     src.VideoURL,
		YoutubeVideoID: src.VideoID,
		SoundcloudURL:  src.StreamURL,
		CreatedAt:      time.Now(),
	}
	state := &domain.PlaybackState{Timestamp: time.Now().UnixMilli()}

	d.mu.Lock()
	d.rooms[room.ID] = room
	d.states[room.ID] = state
	d.mu.Unlock()

	log.Info().Str("module", "core.directory").Str("room", string(room.ID)).Str("kind", string(room.Kind)).Msg("room created")
	out := *room
	return &out
}

func (d *Directory) Get(id domain.RoomID) (*domain.Room, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.rooms[id]
	if !ok {
		return nil, false
	}
	out := *room
	return &out, true
}

func (d *Directory) State(id domain.RoomID) (*domain.PlaybackState, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	state, ok := d.states[id]
	if !ok {
		return nil, false
	}
	out := *state
	return &out, true
}

// UpdateState merges the supplied fields into the stored state (last writer
// wins), stamps the server timestamp and mirrors the transport fields onto
// the room record. Returns the full new state, or false for an unknown room.
func (d *Directory) UpdateState(id domain.RoomID, u domain.StateUpdate) (*domain.PlaybackState, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	state, ok := d.states[id]
	if !ok {
		return nil, false
	}
	state.Merge(u, time.Now().UnixMilli())
	if room, ok := d.rooms[id]; ok {
		room.CurrentTime = state.CurrentTime
		room.IsPlaying = state.IsPlaying
	}
	out := *state
	return &out, true
}

// SetNowPlaying replaces the stream source and display metadata without
// touching the playback position.
func (d *Directory) SetNowPlaying(id domain.RoomID, url, title, artist, artworkURL string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	room, ok := d.rooms[id]
	if !ok {
		return false
	}
	room.SoundcloudURL = url
	room.SoundcloudTitle = title
	room.SoundcloudArtist = artist
	room.SoundcloudArtworkURL = artworkURL
	log.Info().Str("module", "core.directory").Str("room", string(id)).Str("track", url).Msg("now playing updated")
	return true
}

// AddParticipant bumps the advisory occupancy counter. No-op on unknown room.
func (d *Directory) AddParticipant(id domain.RoomID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if room, ok := d.rooms[id]; ok {
		room.Participants++
	}
}

// RemoveParticipant decrements the advisory counter, floored at zero.
func (d *Directory) RemoveParticipant(id domain.RoomID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if room, ok := d.rooms[id]; ok && room.Participants > 0 {
		room.Participants--
	}
}

// Delete removes the room and its state together.
func (d *Directory) Delete(id domain.RoomID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.rooms[id]
	delete(d.rooms, id)
	delete(d.states, id)
	if ok {
		log.Info().Str("module", "core.directory").Str("room", string(id)).Msg("room deleted")
	}
	return ok
}
