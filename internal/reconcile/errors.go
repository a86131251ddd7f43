package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

// FatalError is the one error class that aborts a reconciliation: a missing
// environment manager, a failed removal, or a failed bare creation. Every
// other failure degrades to a report entry.
type FatalError struct {
	State  State
	Reason string
	Hints  []string
	Err    error
}

func (e *FatalError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.State, e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err is (or wraps) a FatalError.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

func fatal(state State, reason string, hints []string, err error) error {
	return &FatalError{State: state, Reason: reason, Hints: hints, Err: err}
}
