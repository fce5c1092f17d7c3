package history_test

import (
	"errors"
	"testing"

	"github.com/notetrack/notetrack/history"
)

type addCommand struct {
	target *int
	delta  int
}

func (c addCommand) Apply() error  { *c.target += c.delta; return nil }
func (c addCommand) Revert() error { *c.target -= c.delta; return nil }

type failingCommand struct{}

func (failingCommand) Apply() error  { return errors.New("nope") }
func (failingCommand) Revert() error { return nil }

// flakyCommand fails to apply or revert while fail is set.
type flakyCommand struct{ fail *bool }

func (c flakyCommand) Apply() error  { return c.err() }
func (c flakyCommand) Revert() error { return c.err() }
func (c flakyCommand) err() error {
	if *c.fail {
		return errors.New("flaky")
	}
	return nil
}

func TestFailedUndoKeepsTransaction(t *testing.T) {
	value, fail := 0, false
	s := history.New(0)
	s.Perform(addCommand{&value, 1})
	s.Perform(flakyCommand{&fail})
	s.Perform(addCommand{&value, 2})
	fail = true
	s.Undo().Do()
	if s.Err() == nil {
		t.Fatal("expected the undo to fail")
	}
	if value != 3 || s.UndoLen() != 1 || s.RedoLen() != 0 {
		t.Fatalf("failed undo should roll back, got value %v, %v undo, %v redo", value, s.UndoLen(), s.RedoLen())
	}
	fail = false
	s.Undo().Do()
	if s.Err() != nil || value != 0 || s.UndoLen() != 0 || s.RedoLen() != 1 {
		t.Fatalf("undo mismatch, got value %v, err %v, %v undo, %v redo", value, s.Err(), s.UndoLen(), s.RedoLen())
	}
	fail = true
	s.Redo().Do()
	if s.Err() == nil {
		t.Fatal("expected the redo to fail")
	}
	if value != 0 || s.UndoLen() != 0 || s.RedoLen() != 1 {
		t.Fatalf("failed redo should roll back, got value %v, %v undo, %v redo", value, s.UndoLen(), s.RedoLen())
	}
	fail = false
	s.Redo().Do()
	if s.Err() != nil || value != 3 || s.UndoLen() != 1 || s.RedoLen() != 0 {
		t.Fatalf("redo mismatch, got value %v, err %v, %v undo, %v redo", value, s.Err(), s.UndoLen(), s.RedoLen())
	}
}

func TestTransactionsMergeUntilCheckpoint(t *testing.T) {
	value := 0
	s := history.New(0)
	s.Perform(addCommand{&value, 1})
	s.Perform(addCommand{&value, 2})
	s.Checkpoint()
	s.Perform(addCommand{&value, 4})
	if value != 7 {
		t.Fatalf("value mismatch after perform, got %v, expected 7", value)
	}
	if s.UndoLen() != 2 {
		t.Fatalf("expected 2 transactions, got %v", s.UndoLen())
	}
	s.Undo().Do()
	if value != 3 {
		t.Fatalf("value mismatch after first undo, got %v, expected 3", value)
	}
	s.Undo().Do()
	if value != 0 {
		t.Fatalf("value mismatch after second undo, got %v, expected 0", value)
	}
	if s.Undo().Enabled() {
		t.Fatal("undo should be disabled when history is empty")
	}
	s.Undo().Do() // no-op
	s.Redo().Do()
	s.Redo().Do()
	if value != 7 {
		t.Fatalf("value mismatch after redo, got %v, expected 7", value)
	}
}

func TestPerformClearsRedo(t *testing.T) {
	value := 0
	s := history.New(0)
	s.Perform(addCommand{&value, 1})
	s.Undo().Do()
	if !s.Redo().Enabled() || s.RedoLen() != 1 {
		t.Fatal("redo should be enabled after undo")
	}
	s.Perform(addCommand{&value, 5})
	if s.Redo().Enabled() {
		t.Fatal("redo should be disabled after a new perform")
	}
	if value != 5 {
		t.Fatalf("value mismatch, got %v, expected 5", value)
	}
}

func TestUndoStartsNewTransaction(t *testing.T) {
	value := 0
	s := history.New(0)
	s.Perform(addCommand{&value, 1})
	s.Checkpoint()
	s.Perform(addCommand{&value, 2})
	s.Undo().Do()
	s.Perform(addCommand{&value, 10})
	if s.UndoLen() != 2 {
		t.Fatalf("a perform after undo should start a new transaction, got %v transactions", s.UndoLen())
	}
}

func TestFailingCommandIsNotRecorded(t *testing.T) {
	s := history.New(0)
	if err := s.Perform(failingCommand{}); err == nil {
		t.Fatal("expected an error")
	}
	if s.UndoLen() != 0 {
		t.Fatal("failed command should not be recorded")
	}
	if err := s.Perform(nil); !errors.Is(err, history.ErrNilCommand) {
		t.Fatalf("expected ErrNilCommand, got %v", err)
	}
}

func TestBoundedHistory(t *testing.T) {
	value := 0
	s := history.New(3)
	for i := 0; i < 5; i++ {
		s.Perform(addCommand{&value, 1})
		s.Checkpoint()
	}
	if s.UndoLen() != 3 {
		t.Fatalf("expected history to be bounded to 3, got %v", s.UndoLen())
	}
	for s.Undo().Enabled() {
		s.Undo().Do()
	}
	if value != 2 {
		t.Fatalf("only the last 3 transactions should be undoable, got value %v", value)
	}
}

func TestClearHistory(t *testing.T) {
	value := 0
	s := history.New(0)
	s.Perform(addCommand{&value, 1})
	s.Checkpoint()
	s.Perform(addCommand{&value, 1})
	s.Undo().Do()
	s.ClearHistory()
	if s.Undo().Enabled() || s.Redo().Enabled() {
		t.Fatal("history should be empty after ClearHistory")
	}
}

func TestZeroAction(t *testing.T) {
	var a history.Action
	if a.Enabled() {
		t.Fatal("zero action should be disabled")
	}
	if a.Do() {
		t.Fatal("zero action should not run")
	}
}

func TestFuncs(t *testing.T) {
	runs, allowed := 0, false
	a := history.MakeAction(history.Funcs{Run: func() { runs++ }, Allowed: func() bool { return allowed }})
	if a.Do() || runs != 0 {
		t.Fatal("disabled action should not run")
	}
	allowed = true
	if !a.Do() || runs != 1 {
		t.Fatalf("enabled action should run once, ran %v times", runs)
	}
	if !history.MakeAction(history.Funcs{}).Do() {
		t.Fatal("action without a check should always be enabled")
	}
}
