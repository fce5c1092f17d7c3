package sequence

import "github.com/notetrack/notetrack"

type (
	// TimedEvent is a note on or note off event of an external event stream,
	// e.g. a MIDI file track, timestamped in ticks.
	TimedEvent struct {
		Tick     float64
		Channel  uint8
		Key      uint8
		Velocity uint8
		On       bool
	}
)

// DefaultTicksPerBeat is the tick scale used by Import when it is given a
// non-positive scale.
const DefaultTicksPerBeat = 48

// velocityScale maps 7-bit MIDI velocities to the range [0,1).
const velocityScale = 128

func (e TimedEvent) isNoteOn() bool { return e.On && e.Velocity > 0 }

// Import replaces the contents of the sequence with the notes of an event
// stream, dropping the undo history. Each note on event is paired with the
// next event on the same channel and key; the note lasts until that event.
// Note ons without such an event, or whose pair does not come strictly later
// in time, are dropped. Ticks are converted to beats by dividing with
// ticksPerBeat.
//
// The notes are inserted silently and reported with a single RangeChanged
// and SequenceChanged instead of per note notifications. Returns the number
// of imported notes.
func (s *Sequence) Import(events []TimedEvent, ticksPerBeat float64) int {
	if ticksPerBeat <= 0 {
		ticksPerBeat = DefaultTicksPerBeat
	}
	s.ClearUndoHistory()
	s.Checkpoint()
	s.clear()
	for i, on := range events {
		if !on.isNoteOn() {
			continue
		}
		j := matchingEnd(events, i)
		if j < 0 {
			continue
		}
		start := on.Tick / ticksPerBeat
		end := events[j].Tick / ticksPerBeat
		if end <= start {
			continue
		}
		n := notetrack.Note{
			ID:       notetrack.NewNoteID(),
			Key:      int(on.Key),
			Beat:     float32(start),
			Length:   float32(end - start),
			Velocity: float32(on.Velocity) / velocityScale,
		}
		if !n.Valid() {
			continue
		}
		r := s.newRecord(n)
		s.order = append(s.order, r) // sorted below
		s.byID[n.ID] = r
	}
	s.sort()
	s.updateBeatRange()
	s.notifyRange()
	s.listener.SequenceChanged()
	return len(s.order)
}

// matchingEnd returns the index of the first event after i on the same
// channel and key, or -1.
func matchingEnd(events []TimedEvent, i int) int {
	on := events[i]
	for j := i + 1; j < len(events); j++ {
		if e := events[j]; e.Channel == on.Channel && e.Key == on.Key {
			return j
		}
	}
	return -1
}
