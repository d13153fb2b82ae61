package domain

// PlaybackState is the shared transport position of a room. Timestamp is the
// server wall clock (ms) at the last update so clients can extrapolate drift.
type PlaybackState struct {
	CurrentTime float64 `json:"currentTime"`
	IsPlaying   bool    `json:"isPlaying"`
	Timestamp   int64   `json:"timestamp"`
}

// StateUpdate carries only the fields the client actually sent.
// Nil means "leave as is".
type StateUpdate struct {
	CurrentTime *float64 `json:"currentTime"`
	IsPlaying   *bool    `json:"isPlaying"`
}

// Merge applies the update last-writer-wins. Deliberately no versioning or
// conflict check; a stale update that arrives later simply wins. Kept behind
// this single method so a different strategy could be swapped in.
func (s *PlaybackState) Merge(u StateUpdate, nowMillis int64) {
	if u.CurrentTime != nil {
		s.CurrentTime = *u.CurrentTime
	}
	if u.IsPlaying != nil {
		s.IsPlaying = *u.IsPlaying
	}
	s.Timestamp = nowMillis
}
