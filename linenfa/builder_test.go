package linenfa

import (
	"errors"
	"testing"

	"github.com/coregx/docrex/pattern"
)

func mustLine(t *testing.T, source string, bindings []pattern.PropertyBinding) *pattern.Line {
	t.Helper()
	l, err := pattern.NewLine(source, bindings, "")
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	return l
}

func TestBuildSimpleConcatWrapsInStartEndGroup(t *testing.T) {
	line := mustLine(t, "^a$", nil)
	root, err := pattern.NewRoot("p", "r", 0, []pattern.Node{line}, "")
	if err != nil {
		t.Fatalf("NewRoot: %v", err)
	}
	nfa, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	start := nfa.State(nfa.Start)
	if len(start.Transitions) != 1 || start.Transitions[0].Op != StartGroup {
		t.Fatalf("Start transitions = %+v, want single StartGroup", start.Transitions)
	}
	if start.Transitions[0].BindName != "r" {
		t.Errorf("StartGroup.BindName = %q, want %q", start.Transitions[0].BindName, "r")
	}
}

func TestBuildLineWithoutFuzzHasOnlyExactTransition(t *testing.T) {
	line := mustLine(t, "^a$", nil)
	root, _ := pattern.NewRoot("p", "r", 0, []pattern.Node{line}, "")
	nfa, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	lineI := nfa.State(nfa.Start).Transitions[0].To
	transitions := nfa.State(lineI).Transitions
	if len(transitions) != 1 {
		t.Fatalf("editDistance=0 Line has %d transitions, want 1", len(transitions))
	}
	if transitions[0].Op != MatchLine || transitions[0].Edit != EditNone {
		t.Errorf("transition = %+v, want exact MatchLine", transitions[0])
	}
}

func TestBuildLineWithFuzzEmitsEditVariantsBeforeExact(t *testing.T) {
	line := mustLine(t, "^a$", nil)
	root, _ := pattern.NewRoot("p", "r", 1, []pattern.Node{line}, "")
	nfa, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	lineI := nfa.State(nfa.Start).Transitions[0].To
	transitions := nfa.State(lineI).Transitions
	if len(transitions) != 4 {
		t.Fatalf("fuzzy Line has %d transitions, want 4", len(transitions))
	}
	wantEdits := []EditKind{EditInsertion, EditDeletion, EditSubstitution, EditNone}
	for i, want := range wantEdits {
		if transitions[i].Edit != want {
			t.Errorf("transitions[%d].Edit = %v, want %v", i, transitions[i].Edit, want)
		}
	}
	// Insertion self-loops on the same state.
	if transitions[0].To != lineI {
		t.Errorf("Insertion.To = %v, want self-loop to %v", transitions[0].To, lineI)
	}
}

func TestBuildRepeatZeroOrMoreEntryCarriesBindName(t *testing.T) {
	line := mustLine(t, "^a$", nil)
	repeat, err := pattern.NewRepeat(pattern.ZeroOrMore, "items", line, "")
	if err != nil {
		t.Fatalf("NewRepeat: %v", err)
	}
	root, _ := pattern.NewRoot("p", "r", 0, []pattern.Node{repeat}, "")
	nfa, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	repeatI := nfa.State(nfa.Start).Transitions[0].To
	transitions := nfa.State(repeatI).Transitions
	if len(transitions) != 2 {
		t.Fatalf("repeat entry has %d transitions, want 2", len(transitions))
	}
	byOp := map[OpKind]Transition{}
	for _, tr := range transitions {
		byOp[tr.Op] = tr
	}
	zero, ok := byOp[RepeatZero]
	if !ok {
		t.Fatalf("missing RepeatZero transition")
	}
	if zero.BindName != "items" {
		t.Errorf("RepeatZero.BindName = %q, want %q (required for the empty-array law)", zero.BindName, "items")
	}
	if _, ok := byOp[RepeatOne]; !ok {
		t.Fatalf("missing RepeatOne transition")
	}
}

func TestBuildRepeatOneOrMoreHasNoZeroEntry(t *testing.T) {
	line := mustLine(t, "^a$", nil)
	repeat, _ := pattern.NewRepeat(pattern.OneOrMore, "items", line, "")
	root, _ := pattern.NewRoot("p", "r", 0, []pattern.Node{repeat}, "")
	nfa, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	repeatI := nfa.State(nfa.Start).Transitions[0].To
	transitions := nfa.State(repeatI).Transitions
	if len(transitions) != 1 || transitions[0].Op != RepeatOne {
		t.Fatalf("ONE_OR_MORE entry transitions = %+v, want single RepeatOne", transitions)
	}
}

func TestBuildRepeatLoopBackOrderingNonAnyLineVsAnyLine(t *testing.T) {
	line := mustLine(t, "^a$", nil)
	repeat, _ := pattern.NewRepeat(pattern.OneOrMore, "items", line, "")
	root, _ := pattern.NewRoot("p", "r", 0, []pattern.Node{repeat}, "")
	nfa, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	repeatI := nfa.State(nfa.Start).Transitions[0].To
	bodyI := nfa.State(repeatI).Transitions[0].To
	// bodyI, bodyF from buildLine: bodyI has the MatchLine transition to bodyF.
	bodyF := nfa.State(bodyI).Transitions[0].To
	loopBack := nfa.State(bodyF).Transitions
	if len(loopBack) != 2 || loopBack[0].Op != RepeatEnd || loopBack[1].Op != RepeatMore {
		t.Fatalf("non-AnyLine loop-back = %+v, want [RepeatEnd, RepeatMore]", loopBack)
	}

	anyLine := pattern.NewAnyLine(nil, "")
	anyRepeat, _ := pattern.NewRepeat(pattern.OneOrMore, "items", anyLine, "")
	anyRoot, _ := pattern.NewRoot("p", "r", 0, []pattern.Node{anyRepeat}, "")
	anyNfa, err := Build(anyRoot)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	anyRepeatI := anyNfa.State(anyNfa.Start).Transitions[0].To
	anyBodyI := anyNfa.State(anyRepeatI).Transitions[0].To
	anyBodyF := anyNfa.State(anyBodyI).Transitions[0].To
	anyLoopBack := anyNfa.State(anyBodyF).Transitions
	if len(anyLoopBack) != 2 || anyLoopBack[0].Op != RepeatAnylineMore || anyLoopBack[1].Op != RepeatEnd {
		t.Fatalf("AnyLine loop-back = %+v, want [RepeatAnylineMore, RepeatEnd]", anyLoopBack)
	}
}

func TestBuildOrEmitsSplitAndJoinPerAlternative(t *testing.T) {
	a := mustLine(t, "^a$", nil)
	b := pattern.NewAnyLine(nil, "")
	or, err := pattern.NewOr([]pattern.Node{a, b}, "")
	if err != nil {
		t.Fatalf("NewOr: %v", err)
	}
	root, _ := pattern.NewRoot("p", "r", 0, []pattern.Node{or}, "")
	nfa, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	orI := nfa.State(nfa.Start).Transitions[0].To
	splits := nfa.State(orI).Transitions
	if len(splits) != 2 {
		t.Fatalf("Or entry has %d transitions, want 2 OrSplit", len(splits))
	}
	for _, s := range splits {
		if s.Op != OrSplit {
			t.Errorf("transition op = %v, want OrSplit", s.Op)
		}
	}
}

func TestRewriteLineMatchers(t *testing.T) {
	line := mustLine(t, "^a$", nil)
	root, _ := pattern.NewRoot("p", "r", 0, []pattern.Node{line}, "")
	nfa, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	calls := 0
	nfa.RewriteLineMatchers(func(lm pattern.LineMatcher) pattern.LineMatcher {
		calls++
		return lm
	})
	if calls != 1 {
		t.Errorf("RewriteLineMatchers invoked fn %d times, want 1", calls)
	}
}

func TestValidateRejectsEmptyNFA(t *testing.T) {
	err := validate(&NFA{})
	if err == nil {
		t.Fatalf("expected error for empty NFA")
	}
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Errorf("expected *BuildError, got %T", err)
	}
	if !errors.Is(err, ErrBuildFailed) {
		t.Errorf("expected errors.Is(err, ErrBuildFailed) to hold")
	}
}
