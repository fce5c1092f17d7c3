package sequence

import (
	"github.com/notetrack/notetrack"
	"github.com/notetrack/notetrack/history"
)

// perform hands the command to the undo stack, or applies it directly when
// the sequence has no undo stack.
func (s *Sequence) perform(c history.Command) error {
	if s.undo == nil {
		return c.Apply()
	}
	return s.undo.Perform(c)
}

// Insert inserts a copy of the note as an undoable operation. A note with a
// zero ID gets a fresh identity. Returns the stored note, ErrDuplicateID or
// ErrInvalidNote; on error nothing is submitted to the undo stack.
func (s *Sequence) Insert(n notetrack.Note) (notetrack.Note, error) {
	if n.ID.IsZero() {
		n.ID = notetrack.NewNoteID()
	}
	if !n.Valid() {
		return notetrack.Note{}, ErrInvalidNote
	}
	if s.Contains(n.ID) {
		return notetrack.Note{}, ErrDuplicateID
	}
	if err := s.perform(&insertCommand{s: s, note: n}); err != nil {
		return notetrack.Note{}, err
	}
	stored, _ := s.Find(n.ID)
	return stored, nil
}

// Remove removes the note with the same identity as an undoable operation.
// The stored values are captured, so undoing restores the note exactly as it
// was stored. Returns ErrNotFound if no such note is stored.
func (s *Sequence) Remove(n notetrack.Note) error {
	stored, ok := s.Find(n.ID)
	if !ok {
		return ErrNotFound
	}
	return s.perform(&removeCommand{s: s, note: stored})
}

// Change changes the stored note with the identity of before to the values
// of after as an undoable operation. See SilentChange for the identity rules.
func (s *Sequence) Change(before, after notetrack.Note) (notetrack.Note, error) {
	stored, ok := s.Find(before.ID)
	if !ok {
		return notetrack.Note{}, ErrNotFound
	}
	if !after.Valid() {
		return notetrack.Note{}, ErrInvalidNote
	}
	if after.ID.IsZero() {
		after.ID = stored.ID
	}
	if after.ID != stored.ID && s.Contains(after.ID) {
		return notetrack.Note{}, ErrDuplicateID
	}
	if err := s.perform(&changeCommand{s: s, before: stored, after: after}); err != nil {
		return notetrack.Note{}, err
	}
	changed, _ := s.Find(after.ID)
	return changed, nil
}

// InsertGroup inserts the notes as one undoable operation. Invalid notes and
// identities already stored are left out. Returns the number of inserted
// notes.
func (s *Sequence) InsertGroup(notes []notetrack.Note) (int, error) {
	group := make([]notetrack.Note, 0, len(notes))
	seen := make(map[notetrack.NoteID]bool, len(notes))
	for _, n := range notes {
		if n.ID.IsZero() {
			n.ID = notetrack.NewNoteID()
		}
		if !n.Valid() || seen[n.ID] || s.Contains(n.ID) {
			continue
		}
		seen[n.ID] = true
		group = append(group, n)
	}
	if len(group) == 0 {
		return 0, nil
	}
	if err := s.perform(&insertGroupCommand{s: s, notes: group}); err != nil {
		return 0, err
	}
	return len(group), nil
}

// RemoveGroup removes the notes as one undoable operation. Identities that
// are not stored are ignored. Returns the number of removed notes.
func (s *Sequence) RemoveGroup(notes []notetrack.Note) (int, error) {
	group := make([]notetrack.Note, 0, len(notes))
	seen := make(map[notetrack.NoteID]bool, len(notes))
	for _, n := range notes {
		stored, ok := s.Find(n.ID)
		if !ok || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		group = append(group, stored)
	}
	if len(group) == 0 {
		return 0, nil
	}
	if err := s.perform(&removeGroupCommand{s: s, notes: group}); err != nil {
		return 0, err
	}
	return len(group), nil
}

// ChangeGroup changes before[i] to after[i] for every i as one undoable
// operation. Pairs that cannot be applied are left out. Returns the number of
// changed notes, or ErrGroupMismatch if the groups have different lengths.
func (s *Sequence) ChangeGroup(before, after []notetrack.Note) (int, error) {
	if len(before) != len(after) {
		return 0, ErrGroupMismatch
	}
	b := make([]notetrack.Note, 0, len(before))
	a := make([]notetrack.Note, 0, len(after))
	for i := range before {
		stored, ok := s.Find(before[i].ID)
		if !ok || !after[i].Valid() {
			continue
		}
		next := after[i]
		if next.ID.IsZero() {
			next.ID = stored.ID
		}
		if next.ID != stored.ID && s.Contains(next.ID) {
			continue
		}
		b = append(b, stored)
		a = append(a, next)
	}
	if len(b) == 0 {
		return 0, nil
	}
	if err := s.perform(&changeGroupCommand{s: s, before: b, after: a}); err != nil {
		return 0, err
	}
	return len(b), nil
}

// TransposeAll shifts the key of every note by delta as a single undoable
// group change. If checkpoint is set, a checkpoint is taken first, so the
// transposition is undone on its own and not together with the previous
// edit.
func (s *Sequence) TransposeAll(delta int, checkpoint bool) error {
	if len(s.order) == 0 {
		return nil
	}
	before := make([]notetrack.Note, len(s.order))
	after := make([]notetrack.Note, len(s.order))
	for i, r := range s.order {
		before[i] = r.Note
		after[i] = r.Note.WithDeltaKey(delta)
	}
	if checkpoint {
		s.Checkpoint()
	}
	_, err := s.ChangeGroup(before, after)
	return err
}
