package repo

import (
	"fmt"
)

// Error describes which step of a create or sync failed.
type Error struct {
	// Op is the step being attempted, e.g. "initialize repository in".
	Op string

	// Path is the file or directory the step touched.
	Path string

	// Kind is kerrors.ErrIO or kerrors.ErrVersionControl.
	Kind error

	// Err is the underlying cause.
	Err error

	// Written is true when the workflow file reached the disk but was
	// not committed.
	Written bool
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
	if e.Written {
		msg += " (the file was written but not committed)"
	}
	return msg
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
