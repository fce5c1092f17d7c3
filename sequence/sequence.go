package sequence

import (
	"cmp"
	"errors"
	"iter"
	"math"
	"slices"

	"github.com/viterin/vek/vek32"

	"github.com/notetrack/notetrack"
	"github.com/notetrack/notetrack/history"
)

type (
	// Sequence is the event store of one track. Use New to construct one.
	Sequence struct {
		track    *notetrack.Track
		undo     UndoStack
		listener Listener

		byID   map[notetrack.NoteID]*record // content index
		order  []*record                    // order index, sorted by compareRecords
		serial uint64

		firstBeat     float32
		lastBeat      float32
		notifiedFirst float32
		notifiedLast  float32
		ends          []float32 // scratch buffer for range computation
	}

	// UndoStack receives the edit commands of the undoable operations. The
	// stack is expected to call Apply on Perform, and Apply/Revert on
	// redo/undo. history.Stack implements this interface.
	UndoStack interface {
		Perform(c history.Command) error
		Checkpoint()
		ClearHistory()
	}

	// record is the stored instance of a note. serial is the insertion order,
	// used to order notes starting on the same beat.
	record struct {
		notetrack.Note
		serial uint64
	}
)

var (
	ErrDuplicateID   = errors.New("a note with the same identity already exists")
	ErrNotFound      = errors.New("note not found")
	ErrInvalidNote   = errors.New("note needs a positive length, a finite beat and a velocity in [0, 1]")
	ErrGroupMismatch = errors.New("groups must have equal length")
)

// NoBeat is returned by LastBeat when the sequence is empty.
var NoBeat = float32(math.Inf(-1))

// New returns an empty sequence owned by track. Undoable operations are
// submitted to undo; if undo is nil, they are applied directly without
// history. Changes are reported to listener, which can be nil.
func New(track *notetrack.Track, undo UndoStack, listener Listener) *Sequence {
	if listener == nil {
		listener = NopListener{}
	}
	return &Sequence{
		track:         track,
		undo:          undo,
		listener:      listener,
		byID:          make(map[notetrack.NoteID]*record),
		firstBeat:     float32(math.Inf(1)),
		lastBeat:      NoBeat,
		notifiedFirst: float32(math.Inf(1)),
		notifiedLast:  NoBeat,
	}
}

func (s *Sequence) Track() *notetrack.Track { return s.track }

// Len returns the number of stored notes.
func (s *Sequence) Len() int { return len(s.order) }

// At returns the i:th note in beat order. Panics if i is out of range.
func (s *Sequence) At(i int) notetrack.Note { return s.order[i].Note }

// All iterates copies of the stored notes in beat order.
func (s *Sequence) All() iter.Seq[notetrack.Note] {
	return func(yield func(notetrack.Note) bool) {
		for _, r := range s.order {
			if !yield(r.Note) {
				return
			}
		}
	}
}

// Notes returns copies of the stored notes in beat order.
func (s *Sequence) Notes() []notetrack.Note {
	ret := make([]notetrack.Note, len(s.order))
	for i, r := range s.order {
		ret[i] = r.Note
	}
	return ret
}

// Between iterates the notes starting at or after from and before to, in
// beat order.
func (s *Sequence) Between(from, to float32) iter.Seq[notetrack.Note] {
	return func(yield func(notetrack.Note) bool) {
		i, _ := slices.BinarySearchFunc(s.order, from, func(r *record, beat float32) int {
			return cmp.Compare(r.Beat, beat)
		})
		for ; i < len(s.order) && s.order[i].Beat < to; i++ {
			if !yield(s.order[i].Note) {
				return
			}
		}
	}
}

// Find returns the stored note with the identity.
func (s *Sequence) Find(id notetrack.NoteID) (notetrack.Note, bool) {
	if r, ok := s.byID[id]; ok {
		return r.Note, true
	}
	return notetrack.Note{}, false
}

func (s *Sequence) Contains(id notetrack.NoteID) bool {
	_, ok := s.byID[id]
	return ok
}

// Last returns the note that starts last.
func (s *Sequence) Last() (notetrack.Note, bool) {
	if len(s.order) == 0 {
		return notetrack.Note{}, false
	}
	return s.order[len(s.order)-1].Note, true
}

// LastBeat returns the end of the note that ends last, or NoBeat if the
// sequence is empty.
func (s *Sequence) LastBeat() float32 { return s.lastBeat }

// FirstBeat returns the start of the first note, or +Inf if the sequence is
// empty.
func (s *Sequence) FirstBeat() float32 { return s.firstBeat }

func compareRecords(a, b *record) int {
	if c := cmp.Compare(a.Beat, b.Beat); c != 0 {
		return c
	}
	return cmp.Compare(a.serial, b.serial)
}

func (s *Sequence) newRecord(n notetrack.Note) *record {
	s.serial++
	return &record{Note: n, serial: s.serial}
}

// indexOf locates the stored instance in the order index. The binary search
// cannot land on another instance, as (beat, serial) is unique, but the
// result is still checked against the pointer.
func (s *Sequence) indexOf(r *record) int {
	if i, ok := slices.BinarySearchFunc(s.order, r, compareRecords); ok && s.order[i] == r {
		return i
	}
	return slices.Index(s.order, r)
}

func (s *Sequence) insertSorted(r *record) {
	i, _ := slices.BinarySearchFunc(s.order, r, compareRecords)
	s.order = slices.Insert(s.order, i, r)
}

func (s *Sequence) sort() {
	slices.SortFunc(s.order, compareRecords)
}

// updateBeatRange recomputes the beat range with a full scan, since removing
// the note ending last cannot be handled incrementally.
func (s *Sequence) updateBeatRange() {
	first, last := float32(math.Inf(1)), NoBeat
	if len(s.order) > 0 {
		s.ends = s.ends[:0]
		for _, r := range s.order {
			s.ends = append(s.ends, r.End())
		}
		first, last = s.order[0].Beat, vek32.Max(s.ends)
	}
	s.firstBeat, s.lastBeat = first, last
}

// notifyRange sends RangeChanged if the range has moved since the last
// notification.
func (s *Sequence) notifyRange() {
	if s.firstBeat == s.notifiedFirst && s.lastBeat == s.notifiedLast {
		return
	}
	s.notifiedFirst, s.notifiedLast = s.firstBeat, s.lastBeat
	s.listener.RangeChanged(s.firstBeat, s.lastBeat)
}

// clear drops all notes without notifying.
func (s *Sequence) clear() {
	clear(s.byID)
	clear(s.order)
	s.order = s.order[:0]
}

// Reset drops all notes. The undo history is not touched; call
// ClearUndoHistory first when reloading without history.
func (s *Sequence) Reset() {
	s.clear()
	s.updateBeatRange()
	s.notifyRange()
	s.listener.SequenceChanged()
}

// Checkpoint makes the next undoable operation start a new undoable unit
// instead of merging with the previous one.
func (s *Sequence) Checkpoint() {
	if s.undo != nil {
		s.undo.Checkpoint()
	}
}

// ClearUndoHistory forgets the undo and redo history of the undo stack.
func (s *Sequence) ClearUndoHistory() {
	if s.undo != nil {
		s.undo.ClearHistory()
	}
}
