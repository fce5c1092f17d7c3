package notetrack_test

import (
	"math"
	"testing"

	"github.com/notetrack/notetrack"
)

func TestNoteIdentity(t *testing.T) {
	a := notetrack.NewNote(60, 0, 1, 0.8)
	b := a.WithDeltaKey(12).WithBeat(4).WithVelocity(0.1)
	if !a.Equal(b) {
		t.Fatal("derived notes should keep the identity")
	}
	c := notetrack.NewNote(60, 0, 1, 0.8)
	if a.Equal(c) {
		t.Fatal("equal content with different identity should not be equal")
	}
	if a.ID.IsZero() {
		t.Fatal("NewNote should assign an identity")
	}
	if b.Key != 72 || b.Beat != 4 || b.Velocity != 0.1 {
		t.Fatalf("unexpected derived note %+v", b)
	}
}

func TestNoteValid(t *testing.T) {
	cases := []struct {
		note notetrack.Note
		want bool
	}{
		{notetrack.Note{Length: 1}, true},
		{notetrack.Note{Length: 0}, false},
		{notetrack.Note{Length: -1}, false},
		{notetrack.Note{Beat: -4, Length: 0.25}, true},
		{notetrack.Note{Length: 1, Velocity: 1}, true},
		{notetrack.Note{Length: 1, Velocity: 2}, false},
		{notetrack.Note{Length: 1, Velocity: -0.5}, false},
		{notetrack.Note{Length: 1, Velocity: float32(math.NaN())}, false},
		{notetrack.NewNote(60, 0, 1, float32(math.NaN())), true},
	}
	for _, c := range cases {
		if got := c.note.Valid(); got != c.want {
			t.Errorf("Valid(%+v) = %v, expected %v", c.note, got, c.want)
		}
	}
}

func TestNoteClamping(t *testing.T) {
	n := notetrack.NewNote(60, 0, 1, 2)
	if n.Velocity != 1 {
		t.Errorf("velocity should be clamped to 1, got %v", n.Velocity)
	}
	if n = n.WithVelocity(-1); n.Velocity != 0 {
		t.Errorf("velocity should be clamped to 0, got %v", n.Velocity)
	}
	if n = n.WithDeltaLength(-5); n.Length != notetrack.MinLength {
		t.Errorf("length should be clamped to MinLength, got %v", n.Length)
	}
	if n.End() != n.Beat+n.Length {
		t.Errorf("End mismatch")
	}
}

func TestNoteIDText(t *testing.T) {
	id := notetrack.NewNoteID()
	b, err := id.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var got notetrack.NoteID
	if err := got.UnmarshalText(b); err != nil {
		t.Fatal(err)
	}
	if got != id {
		t.Fatalf("id mismatch, got %v, expected %v", got, id)
	}
}
