package notetrack

import (
	"math"

	"github.com/google/uuid"
)

type (
	// NoteID is the stable identity of a note. Two notes are the same note if
	// and only if their IDs match, no matter what their key, beat, length or
	// velocity are. This allows a note to be found by its old identity and
	// then changed in place, without a remove+insert cycle.
	NoteID uuid.UUID

	// Note is a single musical event on a track: which key is played, when it
	// starts (in beats), how long it lasts (in beats) and how hard it is
	// played (velocity in range [0,1]). Key is not restricted to one octave
	// or to the MIDI range.
	//
	// Note is a value type; the methods returning a Note return modified
	// copies and keep the ID, so the result can be used as the "after" value
	// of a change.
	Note struct {
		ID       NoteID
		Key      int
		Beat     float32
		Length   float32
		Velocity float32
	}
)

// NewNoteID returns a fresh, random note identity.
func NewNoteID() NoteID { return NoteID(uuid.New()) }

// IsZero reports whether the id is the zero value, i.e. never assigned.
func (id NoteID) IsZero() bool { return id == NoteID{} }

func (id NoteID) String() string { return uuid.UUID(id).String() }

// MarshalText and UnmarshalText make NoteIDs usable as map keys and
// attribute values in the persisted formats.
func (id NoteID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *NoteID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// NewNote returns a note with a fresh identity. Velocity is clamped to [0,1].
func NewNote(key int, beat, length, velocity float32) Note {
	return Note{
		ID:       NewNoteID(),
		Key:      key,
		Beat:     beat,
		Length:   length,
		Velocity: clampVelocity(velocity),
	}
}

// End returns the beat where the note stops sounding.
func (n Note) End() float32 { return n.Beat + n.Length }

// Valid reports whether the note has a positive length, a finite start and a
// velocity in [0, 1].
func (n Note) Valid() bool {
	b := float64(n.Beat)
	return n.Length > 0 && !math.IsNaN(b) && !math.IsInf(b, 0) && !math.IsInf(float64(n.Length), 0) &&
		n.Velocity >= 0 && n.Velocity <= 1
}

// Equal compares identities only.
func (n Note) Equal(o Note) bool { return n.ID == o.ID }

func (n Note) WithKey(key int) Note {
	n.Key = key
	return n
}

func (n Note) WithDeltaKey(delta int) Note {
	n.Key += delta
	return n
}

func (n Note) WithBeat(beat float32) Note {
	n.Beat = beat
	return n
}

func (n Note) WithDeltaBeat(delta float32) Note {
	n.Beat += delta
	return n
}

// WithLength returns a copy with the given length. Lengths are never made
// shorter than MinLength.
func (n Note) WithLength(length float32) Note {
	n.Length = max(length, MinLength)
	return n
}

func (n Note) WithDeltaLength(delta float32) Note {
	return n.WithLength(n.Length + delta)
}

func (n Note) WithVelocity(velocity float32) Note {
	n.Velocity = clampVelocity(velocity)
	return n
}

// MinLength is the shortest length the With* helpers produce.
const MinLength float32 = 1.0 / 64

func clampVelocity(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
