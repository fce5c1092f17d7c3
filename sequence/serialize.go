package sequence

import (
	"github.com/notetrack/notetrack"
	"github.com/notetrack/notetrack/tree"
)

// Element tags and attributes of the persisted track.
const (
	TrackTag     = "track"
	NoteTag      = "note"
	KeyAttr      = "key"
	BeatAttr     = "beat"
	LengthAttr   = "len"
	VelocityAttr = "vel"
)

// Values used for missing note attributes.
const (
	DefaultKey      = 60
	DefaultLength   = 1
	DefaultVelocity = 0.8
)

// Serialize returns the track element with one note element per stored
// note. The note elements are in reverse beat order: the note starting last
// is the first child.
func (s *Sequence) Serialize() *tree.Element {
	e := tree.New(TrackTag)
	e.Children = make([]*tree.Element, len(s.order))
	for i, r := range s.order {
		e.Children[len(s.order)-1-i] = serializeNote(r.Note)
	}
	return e
}

func serializeNote(n notetrack.Note) *tree.Element {
	return tree.New(NoteTag).
		SetInt(KeyAttr, n.Key).
		SetFloat(BeatAttr, n.Beat).
		SetFloat(LengthAttr, n.Length).
		SetFloat(VelocityAttr, n.Velocity)
}

// Deserialize replaces the contents of the sequence with the notes of the
// track element e, which can be the track element itself or its parent. If
// there is no track element, the sequence is left empty. Notes without a
// positive length are skipped. Every loaded note gets a fresh identity.
//
// The notes are added unsorted and sorted once at the end; the change is
// reported with a single RangeChanged and SequenceChanged. The undo history
// is not touched.
func (s *Sequence) Deserialize(e *tree.Element) {
	s.clear()
	if root := e.Find(TrackTag); root != nil {
		var children []*tree.Element
		for c := range root.ChildrenNamed(NoteTag) {
			children = append(children, c)
		}
		// children are newest first; walk backwards so ties keep their order
		for i := len(children) - 1; i >= 0; i-- {
			n := deserializeNote(children[i])
			if !n.Valid() {
				continue
			}
			r := s.newRecord(n)
			s.order = append(s.order, r) // sorted below
			s.byID[n.ID] = r
		}
		s.sort()
	}
	s.updateBeatRange()
	s.notifyRange()
	s.listener.SequenceChanged()
}

func deserializeNote(e *tree.Element) notetrack.Note {
	return notetrack.Note{
		ID:     notetrack.NewNoteID(),
		Key:    e.Int(KeyAttr, DefaultKey),
		Beat:   e.Float(BeatAttr, 0),
		Length: e.Float(LengthAttr, DefaultLength),
	}.WithVelocity(e.Float(VelocityAttr, DefaultVelocity))
}
