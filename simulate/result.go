// Package simulate implements the greedy one-pass simulator: a
// deterministic, non-backtracking walk over a Line-NFA that drives a
// Binding Context to incrementally build an output record.
package simulate

import "github.com/coregx/docrex/bindctx"

// Result is the outcome of one find_match call: either success (a
// completed record plus line-consumption counters) or failure (a
// diagnostic reason plus the point of abandonment). Both branches are
// immutable once returned.
type Result struct {
	Success bool

	// Record holds the extracted record on success; nil on failure.
	Record *bindctx.Object

	// LinesMatched is the number of MATCH_LINE transitions taken
	// (including fuzzy Insertion/Substitution, but not Deletion, which
	// consumes no line).
	LinesMatched int

	// LinesProcessed is the number of document lines consumed on
	// success. On failure it additionally counts the offending line
	// itself (the one that caused the walk to stop), so it can exceed
	// the number of lines actually bound into the record.
	LinesProcessed int

	// FailureReason is empty on success; otherwise one of the literal
	// forms documented in the error handling design.
	FailureReason string

	// Err is nil on success; otherwise a sentinel from this package's
	// error category (ErrNoMatch or ErrStepBudgetExceeded) or an
	// internal error, suitable for errors.Is/errors.As. FailureReason
	// carries the stable diagnostic text; Err carries the programmatic
	// category.
	Err error
}
