/*
Package history implements an undo/redo stack of reversible commands.

Commands are grouped into transactions: every performed command joins the
currently open transaction until Checkpoint is called, after which the next
command starts a new one. Undo and Redo always revert or reapply a whole
transaction, newest command first when reverting. If a command of the
transaction fails, the commands already run are rolled back, the transaction
stays where it was and the error is kept for Err.

The stack is used by the owner of the data (e.g. a sequence) as a sink for
its edit commands; the stack is the only one calling Apply and Revert.
*/
package history

import "errors"

type (
	// Command is a single reversible edit. Apply performs the edit and Revert
	// undoes it. Both should be no-ops returning an error if the edit cannot
	// be performed on the current data.
	Command interface {
		Apply() error
		Revert() error
	}

	Stack struct {
		undoStack [][]Command
		redoStack [][]Command
		open      bool // true if the next Perform joins the last transaction
		max       int
		err       error
	}
)

// DefaultMaxTransactions is used when New is given a non-positive limit.
const DefaultMaxTransactions = 64

var ErrNilCommand = errors.New("nil command")

// New returns an empty stack keeping at most maxTransactions undoable
// transactions; the oldest transactions are forgotten first.
func New(maxTransactions int) *Stack {
	if maxTransactions <= 0 {
		maxTransactions = DefaultMaxTransactions
	}
	return &Stack{max: maxTransactions}
}

// Perform applies the command and, if it succeeded, records it in the open
// transaction. Performing a command clears the redo history. A command that
// fails to apply is not recorded and its error is returned.
func (s *Stack) Perform(c Command) error {
	if c == nil {
		return ErrNilCommand
	}
	if err := c.Apply(); err != nil {
		return err
	}
	s.redoStack = s.redoStack[:0]
	if !s.open || len(s.undoStack) == 0 {
		s.undoStack = pushBounded(s.undoStack, nil, s.max)
		s.open = true
	}
	last := len(s.undoStack) - 1
	s.undoStack[last] = append(s.undoStack[last], c)
	return nil
}

// Checkpoint closes the open transaction, so that the next performed command
// starts a new undoable unit.
func (s *Stack) Checkpoint() { s.open = false }

// ClearHistory forgets all undo and redo transactions.
func (s *Stack) ClearHistory() {
	s.undoStack = s.undoStack[:0]
	s.redoStack = s.redoStack[:0]
	s.open = false
	s.err = nil
}

// UndoLen returns the number of undoable transactions.
func (s *Stack) UndoLen() int { return len(s.undoStack) }

// RedoLen returns the number of redoable transactions.
func (s *Stack) RedoLen() int { return len(s.redoStack) }

// Err returns the error of the last Undo or Redo, or nil if it succeeded.
func (s *Stack) Err() error { return s.err }

// Undo returns an Action to revert the last transaction.
func (s *Stack) Undo() Action { return MakeAction((*stackUndo)(s)) }

type stackUndo Stack

func (s *stackUndo) Enabled() bool { return len(s.undoStack) > 0 }
func (s *stackUndo) Do() {
	s.open = false
	t := s.undoStack[len(s.undoStack)-1]
	if s.err = revert(t); s.err != nil {
		return
	}
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.redoStack = pushBounded(s.redoStack, t, s.max)
}

// Redo returns an Action to reapply the last undone transaction.
func (s *Stack) Redo() Action { return MakeAction((*stackRedo)(s)) }

type stackRedo Stack

func (s *stackRedo) Enabled() bool { return len(s.redoStack) > 0 }
func (s *stackRedo) Do() {
	s.open = false
	t := s.redoStack[len(s.redoStack)-1]
	if s.err = apply(t); s.err != nil {
		return
	}
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.undoStack = pushBounded(s.undoStack, t, s.max)
}

// revert reverts the transaction newest first. On failure the commands
// reverted so far are applied again.
func revert(t []Command) error {
	for i := len(t) - 1; i >= 0; i-- {
		if err := t[i].Revert(); err != nil {
			for _, c := range t[i+1:] {
				c.Apply()
			}
			return err
		}
	}
	return nil
}

// apply applies the transaction oldest first. On failure the commands
// applied so far are reverted again.
func apply(t []Command) error {
	for i, c := range t {
		if err := c.Apply(); err != nil {
			for j := i - 1; j >= 0; j-- {
				t[j].Revert()
			}
			return err
		}
	}
	return nil
}

func pushBounded(stack [][]Command, t []Command, limit int) [][]Command {
	if len(stack) >= limit {
		copy(stack, stack[len(stack)-limit+1:])
		stack = stack[:limit-1]
	}
	return append(stack, t)
}
