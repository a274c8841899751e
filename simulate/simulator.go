package simulate

import (
	"fmt"

	"github.com/coregx/docrex/bindctx"
	"github.com/coregx/docrex/linenfa"
)

// Simulator is the greedy one-pass walker: synchronous, single-threaded,
// non-recursive at the top level (branch lookahead below recurses over a
// bounded, cycle-guarded structural closure, not over the input). A
// Simulator is built once per compiled pattern and its Run method is
// called fresh for every document.
type Simulator struct {
	nfa          *linenfa.NFA
	rootBindName string
	editDistance int
	formatters   *bindctx.Formatters
	maxSteps     int
}

// New creates a Simulator for nfa. maxSteps <= 0 disables the step
// budget.
func New(nfa *linenfa.NFA, rootBindName string, editDistance int, formatters *bindctx.Formatters, maxSteps int) *Simulator {
	return &Simulator{
		nfa:          nfa,
		rootBindName: rootBindName,
		editDistance: editDistance,
		formatters:   formatters,
		maxSteps:     maxSteps,
	}
}

// Run walks the Line-NFA against lines, driving a fresh Binding Context,
// and returns the match outcome. It never panics: an unexpected internal
// condition is trapped and reported as an "Internal matching error"
// failure rather than propagated to the caller.
func (s *Simulator) Run(lines []string) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result = &Result{
				Success:       false,
				FailureReason: fmt.Sprintf("Internal matching error: %v", r),
				Err:           fmt.Errorf("internal matching error: %v", r),
			}
		}
	}()

	ctx := bindctx.New(s.rootBindName, s.formatters)
	cur := s.nfa.Start
	idx := 0
	linesMatched := 0
	editBudget := s.editDistance
	steps := 0

	for {
		if cur == s.nfa.Final {
			return &Result{
				Success:        true,
				Record:         ctx.ToRecord(),
				LinesMatched:   linesMatched,
				LinesProcessed: idx,
			}
		}

		if s.maxSteps > 0 {
			steps++
			if steps > s.maxSteps {
				return &Result{
					Success:        false,
					LinesProcessed: idx,
					FailureReason:  fmt.Sprintf("Internal matching error: %v", ErrStepBudgetExceeded),
					Err:            ErrStepBudgetExceeded,
				}
			}
		}

		t, ok := s.selectTransition(cur, lines, idx, editBudget)
		if !ok {
			return &Result{
				Success:        false,
				LinesProcessed: linesProcessedOnFailure(lines, idx),
				FailureReason:  failureReason(lines, idx),
				Err:            ErrNoMatch,
			}
		}

		if err := s.execute(ctx, t, lines, idx); err != nil {
			return &Result{
				Success:        false,
				LinesProcessed: linesProcessedOnFailure(lines, idx),
				FailureReason:  fmt.Sprintf("Internal matching error: %v", err),
				Err:            fmt.Errorf("internal matching error: %w", err),
			}
		}

		if t.Op == linenfa.MatchLine {
			linesMatched++
			idx++
		} else if t.Edit == linenfa.EditDeletion {
			// REPEAT_ZERO(Deletion): consumes nothing.
		}

		if t.Edit != linenfa.EditNone {
			editBudget--
		}

		cur = t.To
	}
}

// linesProcessedOnFailure reports the offending line as processed: the
// walk inspected lines[idx] (that's precisely why it failed there), so
// it counts toward lines-processed even though it was never consumed.
// At end-of-document (idx == len(lines)) there is no further line to
// count.
func linesProcessedOnFailure(lines []string, idx int) int {
	if idx < len(lines) {
		return idx + 1
	}
	return idx
}

func failureReason(lines []string, idx int) string {
	if idx < len(lines) {
		return fmt.Sprintf("No valid transition found at line %d: %s", idx, lines[idx])
	}
	return "Pattern incomplete: reached end of document without completing pattern"
}

// selectTransition implements the transition-selection algorithm:
// structural transitions first, then an exact MATCH_LINE(None), then
// (editDistance permitting) the fuzzy variants, each class considered in
// the order the builder declared its transitions. A state with more than
// one structural transition is a genuine branch point (Or, or a Repeat's
// entry/loop-back state); resolveBranch decides among them with a
// bounded lookahead rather than always taking the first declared, since
// "structural transitions are always applicable" alone does not produce
// the intended greedy behavior at those junctions.
func (s *Simulator) selectTransition(cur linenfa.StateID, lines []string, idx, editBudget int) (linenfa.Transition, bool) {
	st := s.nfa.State(cur)

	var structural, exact, edit []linenfa.Transition
	for _, t := range st.Transitions {
		switch {
		case t.Edit != linenfa.EditNone:
			edit = append(edit, t)
		case t.Op == linenfa.MatchLine:
			exact = append(exact, t)
		default:
			structural = append(structural, t)
		}
	}

	switch len(structural) {
	case 0:
		// fall through to exact/edit classes below
	case 1:
		return structural[0], true
	default:
		return s.resolveBranch(structural, lines, idx), true
	}

	if idx < len(lines) {
		for _, t := range exact {
			if ok, _, _ := t.Line.Match(lines[idx]); ok {
				return t, true
			}
		}
	}

	if editBudget > 0 {
		if t, ok := s.resolveEdit(edit, lines, idx); ok {
			return t, true
		}
	}

	return linenfa.Transition{}, false
}

// resolveEdit picks among a Line's Insertion/Deletion/Substitution
// transitions once the exact match has already failed. The builder's
// declared order (Insertion, then Deletion, then Substitution) cannot be
// used as a raw first-applicable scan: Insertion and Deletion are each
// "applicable" by their bare precondition (a current line exists; no
// precondition at all) far more often than they are actually the right
// choice, which would starve Substitution — the one variant guaranteed
// to make forward progress — of ever firing. Instead each is tried in
// order of how strong its evidence is:
//
//   - Deletion (the expected line is simply missing) is preferred when
//     skipping this Line lets the pattern's continuation accept the
//     current line directly — i.e. the current line belongs to whatever
//     comes next, not to this Line.
//   - Insertion (the current line is a stray extra) is preferred when the
//     next line is one we could already match exactly — i.e. the real
//     expected line is coming, just not yet.
//   - Substitution is the fallback: it always succeeds when a current
//     line exists, guaranteeing the walk still makes progress when
//     neither of the above has better evidence.
func (s *Simulator) resolveEdit(edit []linenfa.Transition, lines []string, idx int) (linenfa.Transition, bool) {
	var insertion, deletion, substitution *linenfa.Transition
	for i := range edit {
		switch edit[i].Edit {
		case linenfa.EditInsertion:
			insertion = &edit[i]
		case linenfa.EditDeletion:
			deletion = &edit[i]
		case linenfa.EditSubstitution:
			substitution = &edit[i]
		}
	}

	if deletion != nil && s.firstLineAccepts(deletion.To, lines, idx) {
		return *deletion, true
	}
	if insertion != nil && idx < len(lines) && idx+1 < len(lines) {
		if ok, _, _ := insertion.Line.Match(lines[idx+1]); ok {
			return *insertion, true
		}
	}
	if substitution != nil && idx < len(lines) {
		return *substitution, true
	}
	if insertion != nil && idx < len(lines) {
		return *insertion, true
	}
	if deletion != nil {
		return *deletion, true
	}
	return linenfa.Transition{}, false
}

// resolveBranch picks among a state's multiple structural transitions.
// Each of the three shapes the builder can produce at a branch point is
// handled explicitly:
//
//   - Or: every transition is OR_SPLIT. The first alternative whose
//     sub-NFA's next required line-consuming transition accepts the
//     current line is taken; if none do, the first alternative is taken
//     anyway so the walk still commits to one branch and fails with a
//     specific diagnostic further along, rather than stalling at the
//     Or junction itself.
//   - A Repeat's entry state: REPEAT_ZERO and REPEAT_ONE. REPEAT_ONE
//     (enter the body) is preferred whenever the body's first line
//     transition accepts the current line; otherwise REPEAT_ZERO.
//   - A Repeat's loop-back state: REPEAT_END paired with either
//     REPEAT_MORE (prefer looping when the body accepts again) or
//     REPEAT_ANYLINE_MORE (prefer *stopping* when the continuation past
//     the repeat accepts the current line — an AnyLine body always
//     accepts, so looping must be the fallback, not the default, or the
//     walk would never terminate).
func (s *Simulator) resolveBranch(structural []linenfa.Transition, lines []string, idx int) linenfa.Transition {
	allOrSplit := true
	for _, t := range structural {
		if t.Op != linenfa.OrSplit {
			allOrSplit = false
			break
		}
	}
	if allOrSplit {
		for _, t := range structural {
			if s.firstLineAccepts(t.To, lines, idx) {
				return t
			}
		}
		return structural[0]
	}

	byOp := make(map[linenfa.OpKind]linenfa.Transition, len(structural))
	for _, t := range structural {
		byOp[t.Op] = t
	}

	if zero, okZero := byOp[linenfa.RepeatZero]; okZero {
		if one, okOne := byOp[linenfa.RepeatOne]; okOne {
			if s.firstLineAccepts(one.To, lines, idx) {
				return one
			}
			return zero
		}
	}

	if end, okEnd := byOp[linenfa.RepeatEnd]; okEnd {
		if more, okMore := byOp[linenfa.RepeatMore]; okMore {
			if s.firstLineAccepts(more.To, lines, idx) {
				return more
			}
			return end
		}
		if anyMore, okAny := byOp[linenfa.RepeatAnylineMore]; okAny {
			if s.firstLineAccepts(end.To, lines, idx) {
				return end
			}
			return anyMore
		}
	}

	return structural[0]
}

// firstLineAccepts follows structural-only transitions from start,
// without consuming input, until it either finds an exact MATCH_LINE
// that accepts lines[idx] (returns true), or reaches the NFA's final
// state with no input remaining (also true, since no further line is
// required), or exhausts the reachable closure without either (false).
// A visited set guards against the cycles a Repeat's back-edges
// introduce. Only exact matches are consulted: branch selection is
// decided on firm evidence, with fuzzy matching reserved as the
// fallback taken after ordinary selection has already failed.
func (s *Simulator) firstLineAccepts(start linenfa.StateID, lines []string, idx int) bool {
	visited := make(map[linenfa.StateID]bool)
	var visit func(id linenfa.StateID) bool
	visit = func(id linenfa.StateID) bool {
		if visited[id] {
			return false
		}
		visited[id] = true

		if id == s.nfa.Final {
			return idx >= len(lines)
		}

		for _, t := range s.nfa.State(id).Transitions {
			if t.Edit != linenfa.EditNone {
				continue
			}
			if t.Op == linenfa.MatchLine {
				if idx < len(lines) {
					if ok, _, _ := t.Line.Match(lines[idx]); ok {
						return true
					}
				}
				continue
			}
			if visit(t.To) {
				return true
			}
		}
		return false
	}
	return visit(start)
}
