package history

type (
	// Action is an operation on the history, such as undo or redo, that a
	// caller can check before running it: a menu can disable "Undo" when
	// Enabled returns false. The zero Action is never enabled.
	Action struct {
		doer Doer
	}

	Doer interface {
		Do()
	}

	// Enabler is optionally implemented by a Doer; a Doer without it is
	// always enabled.
	Enabler interface {
		Enabled() bool
	}

	// Funcs adapts plain functions to a Doer. A nil Allowed means always
	// enabled.
	Funcs struct {
		Run     func()
		Allowed func() bool
	}
)

func MakeAction(doer Doer) Action {
	return Action{doer: doer}
}

// Do runs the action if it is enabled and reports whether it ran.
func (a Action) Do() bool {
	if !a.Enabled() {
		return false
	}
	a.doer.Do()
	return true
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false
	}
	if e, ok := a.doer.(Enabler); ok {
		return e.Enabled()
	}
	return true
}

func (f Funcs) Do() {
	if f.Run != nil {
		f.Run()
	}
}

func (f Funcs) Enabled() bool { return f.Allowed == nil || f.Allowed() }
