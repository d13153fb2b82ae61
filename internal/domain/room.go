// Package domain contains entity without logic, just meta-data
package domain

import "time"

type RoomID string

// RoomKind is fixed at creation and never changes afterwards.
type RoomKind string

const (
	KindYoutube    RoomKind = "youtube"
	KindSoundcloud RoomKind = "soundcloud"
)

// Room is one shared playback session. CurrentTime/IsPlaying mirror the
// latest PlaybackState for cheap reads; the state map stays authoritative.
type Room struct {
	ID                   RoomID    `json:"id"`
	Kind                 RoomKind  `json:"type"`
	YoutubeURL           string    `json:"youtubeUrl,omitempty"`
	YoutubeVideoID       string    `json:"youtubeVideoId,omitempty"`
	SoundcloudURL        string    `json:"soundcloudUrl,omitempty"`
	SoundcloudTitle      string    `json:"soundcloudTitle,omitempty"`
	SoundcloudArtist     string    `json:"soundcloudArtist,omitempty"`
	SoundcloudArtworkURL string    `json:"soundcloudArtworkUrl,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	CurrentTime          float64   `json:"currentTime"`
	IsPlaying            bool      `json:"isPlaying"`

	// Participants is an advisory display counter; the gateway's membership
	// set is what actually decides whether a room is occupied.
	Participants int `json:"participants"`
}
