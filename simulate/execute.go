package simulate

import (
	"github.com/coregx/docrex/bindctx"
	"github.com/coregx/docrex/linenfa"
	"github.com/coregx/docrex/pattern"
)

// execute applies t's binding-context side effect, per the transition
// execution table: structural group/array bookkeeping for every op
// except MATCH_LINE, which additionally binds captures (or, for the
// fuzzy variants, binds nothing or an empty placeholder).
func (s *Simulator) execute(ctx *bindctx.Context, t linenfa.Transition, lines []string, idx int) error {
	switch t.Op {
	case linenfa.StartGroup:
		return ctx.PushObject(t.BindName)

	case linenfa.EndGroup:
		return ctx.PopObject()

	case linenfa.RepeatOne:
		if err := ctx.PushArray(t.BindName); err != nil {
			return err
		}
		return ctx.PushArrayItem()

	case linenfa.RepeatMore, linenfa.RepeatAnylineMore:
		if err := ctx.PopArrayItem(); err != nil {
			return err
		}
		return ctx.PushArrayItem()

	case linenfa.RepeatEnd:
		if err := ctx.PopArrayItem(); err != nil {
			return err
		}
		return ctx.PopArray()

	case linenfa.RepeatZero:
		if t.Edit == linenfa.EditDeletion {
			// Fuzzy "the expected line is missing": consumes nothing,
			// binds nothing.
			return nil
		}
		// A genuine zero-iteration Repeat still produces its array, empty,
		// under bindArrayName (see the Testable Properties' array-creation
		// law): push and immediately pop it.
		if err := ctx.PushArray(t.BindName); err != nil {
			return err
		}
		return ctx.PopArray()

	case linenfa.OrSplit, linenfa.OrJoin, linenfa.StartContinuation, linenfa.EndContinuation:
		return nil

	case linenfa.MatchLine:
		return s.executeMatchLine(ctx, t, lines, idx)

	default:
		return nil
	}
}

func (s *Simulator) executeMatchLine(ctx *bindctx.Context, t linenfa.Transition, lines []string, idx int) error {
	switch t.Edit {
	case linenfa.EditInsertion:
		// A stray, unexpected line: consumed and discarded, no binding.
		return nil

	case linenfa.EditSubstitution:
		// A line stands in for the expected one without being checked
		// against its regex, so there are no captures to bind: each
		// binding receives the empty string.
		return bindAll(ctx, t.Line.Bindings(), "", idx)

	default: // EditNone
		ok, _, captures := t.Line.Match(lines[idx])
		if !ok {
			return &bindctx.StateError{Op: "match_line", Detail: "selected MATCH_LINE transition did not match"}
		}
		bindings := t.Line.Bindings()
		n := len(bindings)
		if len(captures) < n {
			n = len(captures)
		}
		for i := 0; i < n; i++ {
			if err := ctx.BindProperty(bindings[i].Name, captures[i], bindings[i].Formatter, idx+1, -1, -1); err != nil {
				return err
			}
		}
		return nil
	}
}

func bindAll(ctx *bindctx.Context, bindings []pattern.PropertyBinding, value string, idx int) error {
	for _, b := range bindings {
		if err := ctx.BindProperty(b.Name, value, b.Formatter, idx+1, -1, -1); err != nil {
			return err
		}
	}
	return nil
}
