// Package linenfa implements the Line-NFA: a directed graph of numbered
// states and labelled transitions compiled from a pattern tree, suitable
// for a deterministic greedy walk. Structural transitions are epsilon
// (consume no input line); MATCH_LINE transitions consume exactly one
// document line.
package linenfa

import "github.com/coregx/docrex/pattern"

// StateID is a state's position in an NFA's States slice.
type StateID uint32

// InvalidState marks an uninitialized StateID.
const InvalidState StateID = 1<<32 - 1

// OpKind is the kind of operation a transition performs.
type OpKind int

const (
	MatchLine OpKind = iota
	OrSplit
	OrJoin
	RepeatZero
	RepeatOne
	RepeatMore
	RepeatAnylineMore
	RepeatEnd
	StartGroup
	EndGroup
	StartContinuation
	EndContinuation
)

func (k OpKind) String() string {
	switch k {
	case MatchLine:
		return "MATCH_LINE"
	case OrSplit:
		return "OR_SPLIT"
	case OrJoin:
		return "OR_JOIN"
	case RepeatZero:
		return "REPEAT_ZERO"
	case RepeatOne:
		return "REPEAT_ONE"
	case RepeatMore:
		return "REPEAT_MORE"
	case RepeatAnylineMore:
		return "REPEAT_ANYLINE_MORE"
	case RepeatEnd:
		return "REPEAT_END"
	case StartGroup:
		return "START_GROUP"
	case EndGroup:
		return "END_GROUP"
	case StartContinuation:
		return "START_CONTINUATION"
	case EndContinuation:
		return "END_CONTINUATION"
	default:
		return "UNKNOWN"
	}
}

// EditKind classifies a MATCH_LINE/REPEAT_ZERO transition emitted to
// support fuzzy (edit-distance) line matching.
type EditKind int

const (
	EditNone EditKind = iota
	EditSubstitution
	EditDeletion
	EditInsertion
)

func (k EditKind) String() string {
	switch k {
	case EditNone:
		return "NONE"
	case EditSubstitution:
		return "SUBSTITUTION"
	case EditDeletion:
		return "DELETION"
	case EditInsertion:
		return "INSERTION"
	default:
		return "UNKNOWN"
	}
}

// Transition is a single outgoing edge from a state. Either it is
// line-consuming (Op == MatchLine) or it is a structural epsilon edge
// (every other Op). BindName carries a Group's bindObjectName or a
// Repeat's bindArrayName for the transitions whose execution pushes or
// pops a Binding Context frame; it is the Go-idiomatic stand-in for the
// composite-ref the source pattern node would otherwise be referenced by,
// holding exactly the one piece of information the simulator needs from
// it.
type Transition struct {
	Op   OpKind
	Edit EditKind
	To   StateID

	Line     pattern.LineMatcher // set for Op == MatchLine (and edit variants that reuse it)
	BindName string              // set for StartGroup/EndGroup/RepeatZero (non-Deletion)/RepeatOne/RepeatMore/RepeatAnylineMore/RepeatEnd
}

// IsStructural reports whether the transition is a structural (epsilon)
// transition, as opposed to one that consumes a line.
func (t Transition) IsStructural() bool {
	return t.Edit == EditNone && t.Op != MatchLine
}

// State is one node of the Line-NFA: a monotonically increasing id and an
// ordered list of outgoing transitions. The order of Transitions encodes
// greedy priority and must never be rearranged after construction.
type State struct {
	ID          StateID
	Transitions []Transition
}

// NFA is a compiled Line-NFA: a fixed set of states with exactly one
// initial and one final state.
type NFA struct {
	States []State
	Start  StateID
	Final  StateID
}

// State returns the state with the given id.
func (n *NFA) State(id StateID) *State {
	return &n.States[id]
}

// RewriteLineMatchers replaces every transition's Line reference with
// fn's result, in place. It is used to splice an optional prefilter
// decorator around each pattern.Line after the NFA has been built,
// without the simulator needing any awareness that a prefilter exists.
func (n *NFA) RewriteLineMatchers(fn func(pattern.LineMatcher) pattern.LineMatcher) {
	for si := range n.States {
		transitions := n.States[si].Transitions
		for ti := range transitions {
			if transitions[ti].Line != nil {
				transitions[ti].Line = fn(transitions[ti].Line)
			}
		}
	}
}
