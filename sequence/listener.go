package sequence

import (
	"log"

	"github.com/notetrack/notetrack"
)

type (
	// Listener receives the change notifications of a Sequence. All methods
	// are called synchronously from within the mutating call.
	Listener interface {
		// NoteAdded is called for every inserted note.
		NoteAdded(n notetrack.Note)
		// NoteRemoving is called before a note is removed, while it is still
		// stored.
		NoteRemoving(n notetrack.Note)
		// NotesRemoved is called once after a removal or a group removal has
		// completed.
		NotesRemoved()
		// NoteChanged is called for every changed note.
		NoteChanged(before, after notetrack.Note)
		// RangeChanged is called when the start of the first note or the end
		// of the last note moves. For an empty sequence first is +Inf and
		// last is NoBeat.
		RangeChanged(first, last float32)
		// SequenceChanged is called after bulk changes (reset, import,
		// deserialization) that are not reported note by note.
		SequenceChanged()
	}

	// NopListener ignores all notifications. Embed it to implement only some
	// of the Listener methods.
	NopListener struct{}

	// Listeners broadcasts every notification to all its elements, in order.
	Listeners []Listener

	// LogListener logs every notification of a sequence.
	LogListener struct {
		Logger *log.Logger
		Prefix string
	}
)

func (NopListener) NoteAdded(notetrack.Note)                 {}
func (NopListener) NoteRemoving(notetrack.Note)              {}
func (NopListener) NotesRemoved()                            {}
func (NopListener) NoteChanged(before, after notetrack.Note) {}
func (NopListener) RangeChanged(first, last float32)         {}
func (NopListener) SequenceChanged()                         {}

func (ls Listeners) NoteAdded(n notetrack.Note) {
	for _, l := range ls {
		l.NoteAdded(n)
	}
}

func (ls Listeners) NoteRemoving(n notetrack.Note) {
	for _, l := range ls {
		l.NoteRemoving(n)
	}
}

func (ls Listeners) NotesRemoved() {
	for _, l := range ls {
		l.NotesRemoved()
	}
}

func (ls Listeners) NoteChanged(before, after notetrack.Note) {
	for _, l := range ls {
		l.NoteChanged(before, after)
	}
}

func (ls Listeners) RangeChanged(first, last float32) {
	for _, l := range ls {
		l.RangeChanged(first, last)
	}
}

func (ls Listeners) SequenceChanged() {
	for _, l := range ls {
		l.SequenceChanged()
	}
}

func (l LogListener) printf(format string, v ...any) {
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(l.Prefix+format, v...)
}

func (l LogListener) NoteAdded(n notetrack.Note) {
	l.printf("added key %d at beat %g, length %g", n.Key, n.Beat, n.Length)
}

func (l LogListener) NoteRemoving(n notetrack.Note) {
	l.printf("removing key %d at beat %g", n.Key, n.Beat)
}

func (l LogListener) NotesRemoved() {}

func (l LogListener) NoteChanged(before, after notetrack.Note) {
	l.printf("changed key %d at beat %g to key %d at beat %g", before.Key, before.Beat, after.Key, after.Beat)
}

func (l LogListener) RangeChanged(first, last float32) {
	l.printf("range changed to [%g, %g]", first, last)
}

func (l LogListener) SequenceChanged() {
	l.printf("sequence changed")
}
