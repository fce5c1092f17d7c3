package sequence

import "github.com/notetrack/notetrack"

// Edit commands. Each one captures the note values needed to apply and
// exactly revert one undoable operation, and calls back the silent
// operations of the sequence. They implement history.Command.
type (
	insertCommand struct {
		s    *Sequence
		note notetrack.Note
	}

	removeCommand struct {
		s    *Sequence
		note notetrack.Note
	}

	changeCommand struct {
		s             *Sequence
		before, after notetrack.Note
	}

	insertGroupCommand struct {
		s     *Sequence
		notes []notetrack.Note
	}

	removeGroupCommand struct {
		s     *Sequence
		notes []notetrack.Note
	}

	changeGroupCommand struct {
		s             *Sequence
		before, after []notetrack.Note
	}
)

func (c *insertCommand) Apply() error {
	_, err := c.s.SilentInsert(c.note)
	return err
}

func (c *insertCommand) Revert() error {
	_, err := c.s.SilentRemove(c.note)
	return err
}

func (c *removeCommand) Apply() error {
	_, err := c.s.SilentRemove(c.note)
	return err
}

func (c *removeCommand) Revert() error {
	_, err := c.s.SilentInsert(c.note)
	return err
}

func (c *changeCommand) Apply() error {
	_, err := c.s.SilentChange(c.before, c.after)
	return err
}

func (c *changeCommand) Revert() error {
	_, err := c.s.SilentChange(c.after, c.before)
	return err
}

func (c *insertGroupCommand) Apply() error {
	if c.s.SilentInsertGroup(c.notes) == 0 {
		return ErrDuplicateID
	}
	return nil
}

func (c *insertGroupCommand) Revert() error {
	if c.s.SilentRemoveGroup(c.notes) == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *removeGroupCommand) Apply() error {
	if c.s.SilentRemoveGroup(c.notes) == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *removeGroupCommand) Revert() error {
	if c.s.SilentInsertGroup(c.notes) == 0 {
		return ErrDuplicateID
	}
	return nil
}

func (c *changeGroupCommand) Apply() error {
	return changeGroupResult(c.s.SilentChangeGroup(c.before, c.after))
}

func (c *changeGroupCommand) Revert() error {
	return changeGroupResult(c.s.SilentChangeGroup(c.after, c.before))
}

func changeGroupResult(n int, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
