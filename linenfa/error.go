package linenfa

import (
	"errors"
	"fmt"
)

// ErrBuildFailed is the sentinel every BuildError unwraps to, so a
// caller can test errors.Is(err, linenfa.ErrBuildFailed) regardless of
// which state or message a particular build failure carries.
var ErrBuildFailed = errors.New("nfa build failed")

// BuildError reports a failure while compiling a pattern tree into a
// Line-NFA. Under the current pattern-tree invariants (enforced at
// pattern construction time) this should be unreachable, but the build
// step validates its own output rather than trusting that invariant
// blindly.
type BuildError struct {
	Message string
	State   StateID
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("nfa build error at state %d: %s", e.State, e.Message)
}

func (e *BuildError) Unwrap() error { return ErrBuildFailed }
