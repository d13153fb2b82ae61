package domain

import "errors"

var ErrEmptyMessage = errors.New("empty message text")

// ChatMessage is one chat entry. Author is client-asserted, there is no
// identity store behind it. Time is client- or server-assigned epoch millis.
type ChatMessage struct {
	Room     RoomID `json:"room"`
	Author   string `json:"author"`
	Text     string `json:"text"`
	Time     int64  `json:"time"`
	TrackURL string `json:"trackUrl,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}
