package bindctx

import "fmt"

// StateError reports a public operation called in an impossible order:
// binding a property when the top frame is not an object, popping an
// empty stack, popping a frame of the wrong kind. It belongs to the
// UsageState error category and indicates a programming error in the
// simulator, never something a host should see from a well-formed
// pattern.
type StateError struct {
	Op     string
	Detail string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("binding context usage error in %s: %s", e.Op, e.Detail)
}
