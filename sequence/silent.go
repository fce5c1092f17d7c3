package sequence

import (
	"slices"

	"github.com/notetrack/notetrack"
)

// SilentInsert stores a copy of the note, bypassing the undo history. A note
// with a zero ID gets a fresh identity. Returns the stored note,
// ErrDuplicateID if a note with the same identity is already stored or
// ErrInvalidNote if the note fails Note.Valid.
func (s *Sequence) SilentInsert(n notetrack.Note) (notetrack.Note, error) {
	if n.ID.IsZero() {
		n.ID = notetrack.NewNoteID()
	}
	if !n.Valid() {
		return notetrack.Note{}, ErrInvalidNote
	}
	if _, ok := s.byID[n.ID]; ok {
		return notetrack.Note{}, ErrDuplicateID
	}
	r := s.newRecord(n)
	s.insertSorted(r)
	s.byID[n.ID] = r
	s.updateBeatRange()
	s.listener.NoteAdded(r.Note)
	s.notifyRange()
	return r.Note, nil
}

// SilentRemove removes the note with the same identity, bypassing the undo
// history. Returns the removed note or ErrNotFound.
func (s *Sequence) SilentRemove(n notetrack.Note) (notetrack.Note, error) {
	r, ok := s.byID[n.ID]
	if !ok {
		return notetrack.Note{}, ErrNotFound
	}
	s.listener.NoteRemoving(r.Note)
	i := s.indexOf(r)
	s.order = slices.Delete(s.order, i, i+1)
	delete(s.byID, n.ID)
	s.updateBeatRange()
	s.listener.NotesRemoved()
	s.notifyRange()
	return r.Note, nil
}

// SilentChange sets the fields of the stored note with the identity of
// before to the values of after, bypassing the undo history. The stored note
// keeps its identity unless after carries a different non-zero ID, in which
// case the note is re-keyed. Returns the changed note, ErrNotFound if before
// is not stored, ErrInvalidNote if after is invalid or ErrDuplicateID if
// after's identity belongs to another stored note.
func (s *Sequence) SilentChange(before, after notetrack.Note) (notetrack.Note, error) {
	r, ok := s.byID[before.ID]
	if !ok {
		return notetrack.Note{}, ErrNotFound
	}
	old, err := s.applyChange(r, after)
	if err != nil {
		return notetrack.Note{}, err
	}
	// reposition the single note: take it out with its old beat, put it back
	// with the new one
	i := s.indexOf(r)
	s.order = slices.Delete(s.order, i, i+1)
	r.Note = s.mergeInto(old, after)
	s.insertSorted(r)
	s.updateBeatRange()
	s.listener.NoteChanged(old, r.Note)
	s.notifyRange()
	return r.Note, nil
}

// SilentInsertGroup stores copies of the notes, sorting and updating the beat
// range once for the whole group. Invalid notes and identities already stored
// are skipped. Returns the number of inserted notes.
func (s *Sequence) SilentInsertGroup(notes []notetrack.Note) int {
	start := len(s.order)
	for _, n := range notes {
		if n.ID.IsZero() {
			n.ID = notetrack.NewNoteID()
		}
		if !n.Valid() {
			continue
		}
		if _, ok := s.byID[n.ID]; ok {
			continue
		}
		r := s.newRecord(n)
		s.order = append(s.order, r) // sorted below
		s.byID[n.ID] = r
	}
	added := make([]notetrack.Note, 0, len(s.order)-start)
	for _, r := range s.order[start:] {
		added = append(added, r.Note)
	}
	if len(added) == 0 {
		return 0
	}
	s.sort()
	s.updateBeatRange()
	for _, n := range added {
		s.listener.NoteAdded(n)
	}
	s.notifyRange()
	return len(added)
}

// SilentRemoveGroup removes the stored notes with the identities of the
// notes, updating the beat range once. Unknown identities are skipped.
// Returns the number of removed notes.
func (s *Sequence) SilentRemoveGroup(notes []notetrack.Note) int {
	doomed := make(map[*record]struct{}, len(notes))
	var removing []*record
	for _, n := range notes {
		r, ok := s.byID[n.ID]
		if !ok {
			continue
		}
		if _, dup := doomed[r]; dup {
			continue
		}
		doomed[r] = struct{}{}
		removing = append(removing, r)
	}
	if len(removing) == 0 {
		return 0
	}
	for _, r := range removing {
		s.listener.NoteRemoving(r.Note)
	}
	for _, r := range removing {
		delete(s.byID, r.ID)
	}
	s.order = slices.DeleteFunc(s.order, func(r *record) bool {
		_, ok := doomed[r]
		return ok
	})
	s.updateBeatRange()
	s.listener.NotesRemoved()
	s.notifyRange()
	return len(removing)
}

// SilentChangeGroup changes every stored note matching before[i] to after[i],
// sorting and updating the beat range once. Pairs whose before is not stored,
// whose after is invalid or would collide with another identity are skipped.
// Returns the number of changed notes, or ErrGroupMismatch if the groups have
// different lengths, in which case nothing is changed.
func (s *Sequence) SilentChangeGroup(before, after []notetrack.Note) (int, error) {
	if len(before) != len(after) {
		return 0, ErrGroupMismatch
	}
	type change struct{ old, new notetrack.Note }
	changes := make([]change, 0, len(before))
	for i := range before {
		r, ok := s.byID[before[i].ID]
		if !ok {
			continue
		}
		old, err := s.applyChange(r, after[i])
		if err != nil {
			continue
		}
		r.Note = s.mergeInto(old, after[i])
		changes = append(changes, change{old, r.Note})
	}
	if len(changes) == 0 {
		return 0, nil
	}
	s.sort()
	s.updateBeatRange()
	for _, c := range changes {
		s.listener.NoteChanged(c.old, c.new)
	}
	s.notifyRange()
	return len(changes), nil
}

// applyChange validates a change of r to after and re-keys the content index
// if the identity changes. It does not touch the order index nor r's fields.
// Returns the note as it was before the change.
func (s *Sequence) applyChange(r *record, after notetrack.Note) (notetrack.Note, error) {
	if !after.Valid() {
		return notetrack.Note{}, ErrInvalidNote
	}
	if !after.ID.IsZero() && after.ID != r.ID {
		if _, taken := s.byID[after.ID]; taken {
			return notetrack.Note{}, ErrDuplicateID
		}
		delete(s.byID, r.ID)
		s.byID[after.ID] = r
	}
	return r.Note, nil
}

// mergeInto returns after with the identity of old, unless after has an
// identity of its own.
func (s *Sequence) mergeInto(old, after notetrack.Note) notetrack.Note {
	if after.ID.IsZero() {
		after.ID = old.ID
	}
	return after
}
