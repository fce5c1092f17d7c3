// Package midifile reads and writes Standard MIDI Files as note events that
// can be imported into, or exported from, a sequence.
package midifile

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/notetrack/notetrack"
	"github.com/notetrack/notetrack/sequence"
)

type File struct {
	// TicksPerBeat is the resolution of the file, or
	// sequence.DefaultTicksPerBeat for files using SMPTE time codes.
	TicksPerBeat int
	// Tracks holds the note events of each track of the file, with
	// absolute tick times, in file order.
	Tracks [][]sequence.TimedEvent
}

var ErrNoNotes = errors.New("no notes to write")

// Read parses a Standard MIDI File. Only note on and note off messages are
// kept.
func Read(r io.Reader) (f *File, err error) {
	// the smf parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, fmt.Errorf("could not parse midi file: %v", r)
		}
	}()
	mf, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse midi file: %w", err)
	}
	f = &File{TicksPerBeat: sequence.DefaultTicksPerBeat}
	if ticks, ok := mf.TimeFormat.(smf.MetricTicks); ok && ticks.Resolution() > 0 {
		f.TicksPerBeat = int(ticks.Resolution())
	}
	for _, track := range mf.Tracks {
		var events []sequence.TimedEvent
		var abs int64
		for _, ev := range track {
			abs += int64(ev.Delta)
			var channel, key, velocity uint8
			switch {
			case ev.Message.GetNoteOn(&channel, &key, &velocity):
				events = append(events, sequence.TimedEvent{Tick: float64(abs), Channel: channel, Key: key, Velocity: velocity, On: true})
			case ev.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, sequence.TimedEvent{Tick: float64(abs), Channel: channel, Key: key, Velocity: velocity})
			}
		}
		f.Tracks = append(f.Tracks, events)
	}
	return f, nil
}

func ReadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read midi file: %w", err)
	}
	return Read(bytes.NewReader(b))
}

// Merged returns the events of all tracks as one stream ordered by tick.
// Events on the same tick keep their track order.
func (f *File) Merged() []sequence.TimedEvent {
	var ret []sequence.TimedEvent
	for _, t := range f.Tracks {
		ret = append(ret, t...)
	}
	slices.SortStableFunc(ret, func(a, b sequence.TimedEvent) int {
		return cmp.Compare(a.Tick, b.Tick)
	})
	return ret
}

// Events converts notes to note on and note off events on the channel, with
// ticksPerBeat ticks per beat. Velocity v is written as round(v*127). Notes
// that would round to zero ticks are left out. At the same tick, note offs
// come before note ons, so a key played again right after it ends pairs up
// correctly on import.
func Events(notes []notetrack.Note, channel uint8, ticksPerBeat int) []sequence.TimedEvent {
	if ticksPerBeat <= 0 {
		ticksPerBeat = sequence.DefaultTicksPerBeat
	}
	var ret []sequence.TimedEvent
	for _, n := range notes {
		if n.Key < 0 || n.Key > 127 {
			continue
		}
		start := math.Round(float64(n.Beat) * float64(ticksPerBeat))
		end := math.Round(float64(n.End()) * float64(ticksPerBeat))
		if start < 0 || end <= start {
			continue
		}
		key := uint8(n.Key)
		vel := uint8(math.Round(float64(n.Velocity) * 127))
		ret = append(ret,
			sequence.TimedEvent{Tick: start, Channel: channel, Key: key, Velocity: max(vel, 1), On: true},
			sequence.TimedEvent{Tick: end, Channel: channel, Key: key})
	}
	slices.SortStableFunc(ret, func(a, b sequence.TimedEvent) int {
		if c := cmp.Compare(a.Tick, b.Tick); c != 0 {
			return c
		}
		switch {
		case a.On == b.On:
			return 0
		case a.On:
			return 1
		}
		return -1
	})
	return ret
}

// Write writes the notes as a single track Standard MIDI File. Keys outside
// the MIDI range and notes before beat 0 are left out.
func Write(w io.Writer, notes []notetrack.Note, channel uint8, ticksPerBeat int) error {
	if ticksPerBeat <= 0 {
		ticksPerBeat = sequence.DefaultTicksPerBeat
	}
	events := Events(notes, channel, ticksPerBeat)
	if len(events) == 0 {
		return ErrNoNotes
	}
	var track smf.Track
	var prev uint32
	for _, e := range events {
		tick := uint32(e.Tick)
		msg := midi.NoteOff(e.Channel, e.Key)
		if e.On {
			msg = midi.NoteOn(e.Channel, e.Key, e.Velocity)
		}
		track.Add(tick-prev, msg)
		prev = tick
	}
	track.Close(0)
	mf := smf.New()
	mf.TimeFormat = smf.MetricTicks(ticksPerBeat)
	if err := mf.Add(track); err != nil {
		return fmt.Errorf("could not add midi track: %w", err)
	}
	if _, err := mf.WriteTo(w); err != nil {
		return fmt.Errorf("could not write midi file: %w", err)
	}
	return nil
}

func WriteFile(path string, notes []notetrack.Note, channel uint8, ticksPerBeat int) error {
	var buf bytes.Buffer
	if err := Write(&buf, notes, channel, ticksPerBeat); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
