/*
Package sequence implements the note store of a single track.

A Sequence owns every note stored in it and keeps two views of them: a
content index, mapping a note's identity to the stored note, and an order
index, the stored notes sorted by start beat (ties in insertion order). Both
views are private and updated together by the mutating methods, so between
calls they always hold exactly the same notes.

Every mutation exists in two forms. The silent forms (SilentInsert,
SilentRemove, SilentChange and their group variants) modify the data
directly. The undoable forms (Insert, Remove, Change, ...) wrap the
corresponding silent form in a history.Command and hand it to the
UndoStack the sequence was constructed with; the stack then applies and
reverts the command, which calls back the silent forms. Import and
deserialization use the silent path only.

Group operations defer sorting and the beat range recomputation to a single
pass after the whole group has been processed. They apply best-effort: an
element that cannot be applied (e.g. an unknown identity) is skipped and the
rest of the group is still processed.

Failures never panic. They are reported with the sentinel errors
ErrDuplicateID, ErrNotFound, ErrInvalidNote and ErrGroupMismatch, and the
failing call leaves the sequence unchanged.

Changes are reported synchronously to the Listener given to New, after both
indexes are consistent again; the only exception is NoteRemoving, which is
sent while the note is still stored.

A Sequence is not safe for concurrent use; the owner must serialize access.
*/
package sequence
