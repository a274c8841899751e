package simulate

import "errors"

// ErrStepBudgetExceeded is wrapped into a MatchFailure's reason rather
// than returned directly: the simulator never escapes Run with a Go
// error, since a failed match is a structured result, not an exception
// (see the matcher facade boundary's propagation policy).
var ErrStepBudgetExceeded = errors.New("exceeded maximum simulation steps")

// ErrNoMatch is the MatchFailure category sentinel, set as Result.Err
// whenever Run fails to walk the Line-NFA to completion for an ordinary
// matching reason (no valid transition, or end of document reached
// before the pattern completed). A caller that wants errors.Is-style
// inspection of a failed Result uses Result.Err; FailureReason remains
// the stable, human-readable diagnostic string.
var ErrNoMatch = errors.New("no match found")
