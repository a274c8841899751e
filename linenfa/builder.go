package linenfa

import "github.com/coregx/docrex/pattern"

// Builder is a visitor over the pattern tree that emits a Line-NFA using
// Thompson-style construction adapted to line tokens: each node produces
// a sub-NFA with a single initial and single final state, returned as an
// (initial, final) StateID pair, and is extended with edit-distance side
// transitions when the pattern carries a non-zero edit distance.
type Builder struct {
	states       []State
	editDistance int
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) newState() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{ID: id})
	return id
}

func (b *Builder) addTransition(from StateID, t Transition) {
	b.states[from].Transitions = append(b.states[from].Transitions, t)
}

// Build compiles root into a Line-NFA. A fresh monotonic state counter is
// used per build, so a Builder should be used for exactly one Build call.
func Build(root *pattern.Root) (*NFA, error) {
	b := NewBuilder()
	b.editDistance = root.EditDistance

	ci, cf := b.buildConcat(root.Children)

	start := b.newState()
	final := b.newState()
	b.addTransition(start, Transition{Op: StartGroup, To: ci, BindName: root.BindObjectName})
	b.addTransition(cf, Transition{Op: EndGroup, To: final, BindName: root.BindObjectName})

	nfa := &NFA{States: b.states, Start: start, Final: final}
	if err := validate(nfa); err != nil {
		return nil, err
	}
	return nfa, nil
}

func (b *Builder) buildNode(n pattern.Node) (StateID, StateID) {
	switch v := n.(type) {
	case *pattern.Line:
		return b.buildLine(v)
	case *pattern.AnyLine:
		return b.buildLine(v)
	case *pattern.Group:
		return b.buildGroupLike(v.BindObjectName, v.Children)
	case *pattern.Repeat:
		return b.buildRepeat(v)
	case *pattern.Or:
		return b.buildOr(v)
	default:
		// Unreachable under the closed pattern.Node set; fail loudly rather
		// than silently producing a dangling state.
		panic("linenfa: unknown pattern node type")
	}
}

// buildConcat builds the concatenation of children: N1, N2, ..., Nn
// chained by START_CONTINUATION transitions. An empty child list produces
// a single START_CONTINUATION edge directly from I to F.
func (b *Builder) buildConcat(children []pattern.Node) (StateID, StateID) {
	if len(children) == 0 {
		i := b.newState()
		f := b.newState()
		b.addTransition(i, Transition{Op: StartContinuation, To: f})
		return i, f
	}

	firstI, prevF := b.buildNode(children[0])
	for _, child := range children[1:] {
		ci, cf := b.buildNode(child)
		b.addTransition(prevF, Transition{Op: StartContinuation, To: ci})
		prevF = cf
	}
	return firstI, prevF
}

// buildGroupLike implements the Group (and, via Build, PatternRoot)
// construction rule: wrap the concatenation of children in START_GROUP /
// END_GROUP transitions carrying the object binding name.
func (b *Builder) buildGroupLike(bindObjectName string, children []pattern.Node) (StateID, StateID) {
	ci, cf := b.buildConcat(children)
	i := b.newState()
	f := b.newState()
	b.addTransition(i, Transition{Op: StartGroup, To: ci, BindName: bindObjectName})
	b.addTransition(cf, Transition{Op: EndGroup, To: f, BindName: bindObjectName})
	return i, f
}

func (b *Builder) buildRepeat(r *pattern.Repeat) (StateID, StateID) {
	ni, nf := b.buildNode(r.Child)
	i := b.newState()
	f := b.newState()

	_, anyLineChild := r.Child.(*pattern.AnyLine)

	switch r.Mode {
	case pattern.ZeroOrMore:
		b.addTransition(i, Transition{Op: RepeatZero, To: f, BindName: r.BindArrayName})
		b.addTransition(i, Transition{Op: RepeatOne, To: ni, BindName: r.BindArrayName})
		b.appendLoopBack(nf, ni, f, r.BindArrayName, anyLineChild)

	case pattern.OneOrMore:
		b.addTransition(i, Transition{Op: RepeatOne, To: ni, BindName: r.BindArrayName})
		b.appendLoopBack(nf, ni, f, r.BindArrayName, anyLineChild)

	case pattern.ZeroOrOne:
		b.addTransition(i, Transition{Op: RepeatZero, To: f, BindName: r.BindArrayName})
		b.addTransition(i, Transition{Op: RepeatOne, To: ni, BindName: r.BindArrayName})
		b.addTransition(nf, Transition{Op: RepeatEnd, To: f, BindName: r.BindArrayName})
	}

	return i, f
}

// appendLoopBack emits the REPEAT_END / REPEAT_MORE (or
// REPEAT_ANYLINE_MORE) pair at a repeat body's final state. For a
// non-AnyLine body, REPEAT_END is declared before REPEAT_MORE; for an
// AnyLine body the order is flipped, signalling that an unbounded
// AnyLine loop should bias toward stopping rather than consuming forever
// (see simulate's loop-continuation guard, which is what actually
// enforces this — the declared order here is documentation of intent,
// not itself sufficient to prevent divergence).
func (b *Builder) appendLoopBack(from, loopTo, exitTo StateID, bindName string, anyLineChild bool) {
	if anyLineChild {
		b.addTransition(from, Transition{Op: RepeatAnylineMore, To: loopTo, BindName: bindName})
		b.addTransition(from, Transition{Op: RepeatEnd, To: exitTo, BindName: bindName})
		return
	}
	b.addTransition(from, Transition{Op: RepeatEnd, To: exitTo, BindName: bindName})
	b.addTransition(from, Transition{Op: RepeatMore, To: loopTo, BindName: bindName})
}

func (b *Builder) buildOr(o *pattern.Or) (StateID, StateID) {
	i := b.newState()
	f := b.newState()
	for _, child := range o.Children {
		ci, cf := b.buildNode(child)
		b.addTransition(i, Transition{Op: OrSplit, To: ci})
		b.addTransition(cf, Transition{Op: OrJoin, To: f})
	}
	return i, f
}

// buildLine implements the Line / AnyLine construction rule. A fuzzy
// (editDistance > 0) non-AnyLine Line gets three additional transitions
// at I, declared before the exact match: Insertion (self-loop, consumes a
// stray line), Deletion (REPEAT_ZERO op reused purely as a no-input
// epsilon-like edge; consumes nothing), and Substitution (consumes one
// line without running the regex). AnyLine never receives edit
// transitions: it matches unconditionally already.
func (b *Builder) buildLine(lm pattern.LineMatcher) (StateID, StateID) {
	i := b.newState()
	f := b.newState()

	if b.editDistance > 0 && !lm.IsAnyLine() {
		b.addTransition(i, Transition{Op: MatchLine, Edit: EditInsertion, To: i, Line: lm})
		b.addTransition(i, Transition{Op: RepeatZero, Edit: EditDeletion, To: f, Line: lm})
		b.addTransition(i, Transition{Op: MatchLine, Edit: EditSubstitution, To: f, Line: lm})
	}
	b.addTransition(i, Transition{Op: MatchLine, Edit: EditNone, To: f, Line: lm})

	return i, f
}

// validate checks the structural invariants the rest of the package
// assumes: a final state distinct from the start, and every state
// reachable from the start via some path (forward or back edge).
func validate(nfa *NFA) error {
	if len(nfa.States) == 0 {
		return &BuildError{Message: "nfa has no states"}
	}
	if nfa.Start == nfa.Final {
		return &BuildError{Message: "start and final state must differ", State: nfa.Start}
	}

	visited := make([]bool, len(nfa.States))
	stack := []StateID{nfa.Start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		for _, t := range nfa.States[id].Transitions {
			if !visited[t.To] {
				stack = append(stack, t.To)
			}
		}
	}
	for id, ok := range visited {
		if !ok {
			return &BuildError{Message: "state unreachable from start", State: StateID(id)}
		}
	}
	return nil
}
