package sequence_test

import (
	"slices"
	"testing"

	"github.com/notetrack/notetrack"
	"github.com/notetrack/notetrack/sequence"
)

func TestImport(t *testing.T) {
	s, stack, rec := newSequence(t)
	s.Insert(notetrack.NewNote(10, 0, 1, 0.8))
	rec.events = nil
	events := []sequence.TimedEvent{
		{Tick: 0, Key: 60, Velocity: 64, On: true},
		{Tick: 0, Key: 64, Velocity: 100, On: true},
		{Tick: 48, Key: 60},
		{Tick: 96, Key: 64, Velocity: 0, On: true}, // note on with zero velocity ends the note
		{Tick: 96, Channel: 1, Key: 60, Velocity: 32, On: true},
		{Tick: 120, Channel: 1, Key: 60},
	}
	if n := s.Import(events, 0); n != 3 {
		t.Fatalf("expected 3 imported notes, got %v", n)
	}
	check(t, s)
	if stack.UndoLen() != 0 {
		t.Fatal("import should clear the undo history")
	}
	notes := s.Notes()
	if got := keys(s); !slices.Equal(got, []int{60, 64, 60}) {
		t.Fatalf("imported keys mismatch, got %v", got)
	}
	if notes[0].Length != 1 || notes[0].Velocity != 0.5 {
		t.Fatalf("first note mismatch, got %+v", notes[0])
	}
	if notes[1].Length != 2 {
		t.Fatalf("second note mismatch, got %+v", notes[1])
	}
	if notes[2].Beat != 2 || notes[2].Length != 0.5 {
		t.Fatalf("third note mismatch, got %+v", notes[2])
	}
	if s.LastBeat() != 2.5 {
		t.Fatalf("last beat mismatch, got %v", s.LastBeat())
	}
	expected := []string{"range 2.5", "sequence"}
	if !slices.Equal(rec.events, expected) {
		t.Fatalf("import should notify in bulk, got %v", rec.events)
	}
}

func TestImportOffBeforeOn(t *testing.T) {
	s, _, _ := newSequence(t)
	events := []sequence.TimedEvent{
		{Tick: 0, Key: 60},
		{Tick: 48, Key: 60, Velocity: 100, On: true},
	}
	if n := s.Import(events, 48); n != 0 {
		t.Fatalf("unpaired note on should be dropped, got %v notes", n)
	}
	if s.Len() != 0 || s.LastBeat() != sequence.NoBeat {
		t.Fatal("sequence should be empty")
	}
}

func TestImportDropsEmptyNotes(t *testing.T) {
	s, _, _ := newSequence(t)
	events := []sequence.TimedEvent{
		{Tick: 10, Key: 60, Velocity: 100, On: true},
		{Tick: 10, Key: 60},
		{Tick: 20, Key: 62, Velocity: 100, On: true},
		{Tick: 30, Key: 61},
		{Tick: 40, Key: 62},
	}
	if n := s.Import(events, 10); n != 1 {
		t.Fatalf("expected 1 note, got %v", n)
	}
	if n := s.At(0); n.Key != 62 || n.Beat != 2 || n.Length != 2 {
		t.Fatalf("note mismatch, got %+v", n)
	}
}
