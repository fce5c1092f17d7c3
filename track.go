package notetrack

import "github.com/google/uuid"

// Track describes the owner of a note sequence: a named MIDI channel with a
// stable identity. The note data itself lives in the sequence that is
// constructed with a reference to the Track.
type Track struct {
	ID      uuid.UUID
	Name    string
	Channel int
}

// NewTrack returns a track with a fresh identity. Channel is clamped to the
// MIDI channel range 0..15.
func NewTrack(name string, channel int) *Track {
	return &Track{ID: uuid.New(), Name: name, Channel: min(max(channel, 0), 15)}
}

// Label returns the name of the track, or its ID if the track is unnamed.
func (t *Track) Label() string {
	if t == nil {
		return ""
	}
	if t.Name != "" {
		return t.Name
	}
	return t.ID.String()
}
