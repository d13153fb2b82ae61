package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/Waveroom/internal/domain"
)

func videoSource(t *testing.T) domain.Source {
	t.Helper()
	src, err := domain.NewSource("https://youtu.be/dQw4w9WgXcQ", "", "")
	require.NoError(t, err)
	return src
}

func TestDirectory_CreateInitializesState(t *testing.T) {
	req := require.New(t)
	d := NewDirectory()

	room := d.Create(videoSource(t))
	req.NotEmpty(room.ID)
	req.Equal(domain.KindYoutube, room.Kind)
	req.Equal("dQw4w9WgXcQ", room.YoutubeVideoID)
	req.False(room.CreatedAt.IsZero())

	state, ok := d.State(room.ID)
	req.True(ok)
	req.Zero(state.CurrentTime)
	req.False(state.IsPlaying)
	req.NotZero(state.Timestamp)
}

func TestDirectory_LookupUnknownRoom(t *testing.T) {
	req := require.New(t)
	d := NewDirectory()

	_, ok := d.Get("nope")
	req.False(ok)
	_, ok = d.State("nope")
	req.False(ok)
	_, ok = d.UpdateState("nope", domain.StateUpdate{})
	req.False(ok)
}

func TestDirectory_UpdateStateMergesFields(t *testing.T) {
	req := require.New(t)
	d := NewDirectory()
	room := d.Create(videoSource(t))

	ct := 10.0
	state, ok := d.UpdateState(room.ID, domain.StateUpdate{CurrentTime: &ct})
	req.True(ok)
	req.Equal(10.0, state.CurrentTime)
	req.False(state.IsPlaying)

	playing := true
	state, ok = d.UpdateState(room.ID, domain.StateUpdate{IsPlaying: &playing})
	req.True(ok)
	// Fields merge, not replace.
	req.Equal(10.0, state.CurrentTime)
	req.True(state.IsPlaying)

	// The room record mirrors the transport fields.
	got, ok := d.Get(room.ID)
	req.True(ok)
	req.Equal(10.0, got.CurrentTime)
	req.True(got.IsPlaying)
}

func TestDirectory_SetNowPlayingKeepsPlaybackState(t *testing.T) {
	req := require.New(t)
	d := NewDirectory()
	src, err := domain.NewSource("", "", domain.KindSoundcloud)
	req.NoError(err)
	room := d.Create(src)

	ct := 33.5
	_, ok := d.UpdateState(room.ID, domain.StateUpdate{CurrentTime: &ct})
	req.True(ok)

	req.True(d.SetNowPlaying(room.ID, "https://soundcloud.com/a/b", "Track", "Artist", "https://img"))

	got, _ := d.Get(room.ID)
	req.Equal("https://soundcloud.com/a/b", got.SoundcloudURL)
	req.Equal("Track", got.SoundcloudTitle)
	req.Equal("Artist", got.SoundcloudArtist)

	state, _ := d.State(room.ID)
	req.Equal(33.5, state.CurrentTime)

	req.False(d.SetNowPlaying("nope", "u", "", "", ""))
}

func TestDirectory_ParticipantCounterFloorsAtZero(t *testing.T) {
	req := require.New(t)
	d := NewDirectory()
	room := d.Create(videoSource(t))

	d.RemoveParticipant(room.ID)
	got, _ := d.Get(room.ID)
	req.Zero(got.Participants)

	d.AddParticipant(room.ID)
	d.AddParticipant(room.ID)
	d.RemoveParticipant(room.ID)
	got, _ = d.Get(room.ID)
	req.Equal(1, got.Participants)

	// Unknown room is a no-op, not a panic.
	d.AddParticipant("nope")
	d.RemoveParticipant("nope")
}

func TestDirectory_DeleteRemovesRoomAndState(t *testing.T) {
	req := require.New(t)
	d := NewDirectory()
	room := d.Create(videoSource(t))

	req.True(d.Delete(room.ID))
	_, ok := d.Get(room.ID)
	req.False(ok)
	_, ok = d.State(room.ID)
	req.False(ok)

	req.False(d.Delete(room.ID))
}
