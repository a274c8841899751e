// Package pattern defines the immutable, value-typed tree of matching
// constructs that a document is matched against: groups, repeats,
// alternation, and line matchers (exact or fuzzy, by regex or wildcard).
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Node is the closed set of pattern-tree node kinds: Root, Group, Repeat,
// Or, Line, AnyLine. It replaces the visitor-dispatched class hierarchy a
// Java port of this engine would use with a tagged-union style sum type;
// callers type-switch on the concrete type.
type Node interface {
	isNode()
}

// RepeatMode is the cardinality a Repeat node enforces over its single child.
type RepeatMode int

const (
	ZeroOrMore RepeatMode = iota
	OneOrMore
	ZeroOrOne
)

func (m RepeatMode) String() string {
	switch m {
	case ZeroOrMore:
		return "ZERO_OR_MORE"
	case OneOrMore:
		return "ONE_OR_MORE"
	case ZeroOrOne:
		return "ZERO_OR_ONE"
	default:
		return "UNKNOWN"
	}
}

// PropertyBinding declares that a captured value should be stored under a
// named property in the enclosing object frame, optionally passed through
// a named formatter first.
type PropertyBinding struct {
	Name      string
	Formatter string // opaque formatter spec, e.g. "currency()"; empty if none
}

// LineMatcher is implemented by Line and AnyLine: the two node kinds that
// consume exactly one document line and optionally extract captures from
// it.
type LineMatcher interface {
	Node
	// Match attempts to match line using find semantics (a partial match
	// anywhere in the line). It reports whether the match succeeded, the
	// whole matched text, and the ordered capture-group strings (empty
	// string for a non-participating group).
	Match(line string) (ok bool, whole string, captures []string)
	Bindings() []PropertyBinding
	IsAnyLine() bool
}

// Line matches a single document line using a compiled regular expression
// and binds capture groups positionally to PropertyBindings.
type Line struct {
	Comment  string
	Source   string
	bindings []PropertyBinding

	compiled *regexp.Regexp
}

// NewLine constructs a Line, trimming and validating the regex source.
// The returned Line is not yet compiled; call Compile before Match (Match
// on an uncompiled Line reports no match).
func NewLine(source string, bindings []PropertyBinding, comment string) (*Line, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, &ValidationError{Field: "line.regex", Detail: "must not be empty"}
	}
	return &Line{
		Source:   source,
		bindings: copyBindings(bindings),
		Comment:  strings.TrimSpace(comment),
	}, nil
}

func (l *Line) isNode() {}

// Compile compiles the line's regex source. It is idempotent: the first
// call caches the compiled regex, and later calls are no-ops even if the
// source were (hypothetically) mutated, since Line is otherwise immutable
// post-construction.
func (l *Line) Compile() error {
	if l.compiled != nil {
		return nil
	}
	re, err := regexp.Compile(l.Source)
	if err != nil {
		return &CompileError{Source: l.Source, Err: err}
	}
	l.compiled = re
	return nil
}

// NumCaptures returns the number of capturing groups in the compiled
// regex. Compile must have been called already.
func (l *Line) NumCaptures() int {
	if l.compiled == nil {
		return 0
	}
	return l.compiled.NumSubexp()
}

// Match reports whether the regex finds a match anywhere in line (find
// semantics, not anchored full-line match unless the author anchored the
// regex themselves).
func (l *Line) Match(line string) (bool, string, []string) {
	if l.compiled == nil {
		return false, "", nil
	}
	idx := l.compiled.FindStringSubmatchIndex(line)
	if idx == nil {
		return false, "", nil
	}
	whole := line[idx[0]:idx[1]]
	n := len(idx)/2 - 1
	captures := make([]string, n)
	for i := 0; i < n; i++ {
		lo, hi := idx[2+2*i], idx[3+2*i]
		if lo < 0 || hi < 0 {
			captures[i] = ""
			continue
		}
		captures[i] = line[lo:hi]
	}
	return true, whole, captures
}

// Bindings returns the ordered property bindings for this line's capture
// groups.
func (l *Line) Bindings() []PropertyBinding { return l.bindings }

// IsAnyLine reports false: Line requires a regex match, unlike AnyLine.
func (l *Line) IsAnyLine() bool { return false }

// AnyLine matches any single line unconditionally. If bindings are
// present, each receives the full line text.
type AnyLine struct {
	Comment  string
	bindings []PropertyBinding
}

// NewAnyLine constructs an AnyLine node.
func NewAnyLine(bindings []PropertyBinding, comment string) *AnyLine {
	return &AnyLine{
		bindings: copyBindings(bindings),
		Comment:  strings.TrimSpace(comment),
	}
}

func (a *AnyLine) isNode() {}

// Match always succeeds, returning the full line as both the whole match
// and, for each binding, the captured value.
func (a *AnyLine) Match(line string) (bool, string, []string) {
	captures := make([]string, len(a.bindings))
	for i := range captures {
		captures[i] = line
	}
	return true, line, captures
}

// Bindings returns the bindings that each receive the full line text.
func (a *AnyLine) Bindings() []PropertyBinding { return a.bindings }

// IsAnyLine reports true.
func (a *AnyLine) IsAnyLine() bool { return true }

// Group matches its children in declared order and creates an object
// frame named BindObjectName under the enclosing frame.
type Group struct {
	Comment        string
	BindObjectName string
	Children       []Node
}

// NewGroup constructs a Group, validating that BindObjectName is
// non-empty after trim and that Children contains no nil entries.
func NewGroup(bindObjectName string, children []Node, comment string) (*Group, error) {
	bindObjectName = strings.TrimSpace(bindObjectName)
	if bindObjectName == "" {
		return nil, &ValidationError{Field: "group.bindObject", Detail: "must not be empty"}
	}
	if err := validateChildren(children); err != nil {
		return nil, err
	}
	return &Group{
		BindObjectName: bindObjectName,
		Children:       copyNodes(children),
		Comment:        strings.TrimSpace(comment),
	}, nil
}

func (g *Group) isNode() {}

// Repeat matches its single child zero-or-more, one-or-more, or
// zero-or-one times, creating an array frame named BindArrayName.
type Repeat struct {
	Comment       string
	Mode          RepeatMode
	BindArrayName string
	Child         Node
}

// NewRepeat constructs a Repeat, validating BindArrayName and requiring
// exactly one child (use a Group to wrap multiple children).
func NewRepeat(mode RepeatMode, bindArrayName string, child Node, comment string) (*Repeat, error) {
	bindArrayName = strings.TrimSpace(bindArrayName)
	if bindArrayName == "" {
		return nil, &ValidationError{Field: "repeat.bindArray", Detail: "must not be empty"}
	}
	if child == nil {
		return nil, &ValidationError{Field: "repeat.elements", Detail: "must have exactly one child"}
	}
	return &Repeat{
		Mode:          mode,
		BindArrayName: bindArrayName,
		Child:         child,
		Comment:       strings.TrimSpace(comment),
	}, nil
}

func (r *Repeat) isNode() {}

// Or matches the first alternative that accepts; no binding of its own.
type Or struct {
	Comment  string
	Children []Node
}

// NewOr constructs an Or node, requiring at least one child.
func NewOr(children []Node, comment string) (*Or, error) {
	if len(children) == 0 {
		return nil, &ValidationError{Field: "or.elements", Detail: "must have at least one alternative"}
	}
	if err := validateChildren(children); err != nil {
		return nil, err
	}
	return &Or{
		Children: copyNodes(children),
		Comment:  strings.TrimSpace(comment),
	}, nil
}

func (o *Or) isNode() {}

// Root is the top of a pattern tree. It behaves like a Group (its
// children are matched in order under an object frame named
// BindObjectName) but additionally carries the document-level edit
// distance budget.
type Root struct {
	Version        string
	Name           string
	Comment        string
	BindObjectName string
	EditDistance   int
	Children       []Node
}

// NewRoot constructs a Root, validating BindObjectName, rejecting a
// negative EditDistance, and validating children.
func NewRoot(name, bindObjectName string, editDistance int, children []Node, comment string) (*Root, error) {
	bindObjectName = strings.TrimSpace(bindObjectName)
	if bindObjectName == "" {
		return nil, &ValidationError{Field: "root.bindObject", Detail: "must not be empty"}
	}
	if editDistance < 0 {
		return nil, &ValidationError{Field: "root.editDistance", Detail: fmt.Sprintf("must be >= 0, got %d", editDistance)}
	}
	if err := validateChildren(children); err != nil {
		return nil, err
	}
	return &Root{
		Version:        "1",
		Name:           strings.TrimSpace(name),
		BindObjectName: bindObjectName,
		EditDistance:   editDistance,
		Children:       copyNodes(children),
		Comment:        strings.TrimSpace(comment),
	}, nil
}

func (r *Root) isNode() {}

func copyNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

func copyBindings(b []PropertyBinding) []PropertyBinding {
	if len(b) == 0 {
		return nil
	}
	out := make([]PropertyBinding, len(b))
	copy(out, b)
	return out
}

func validateChildren(children []Node) error {
	for i, c := range children {
		if c == nil {
			return &ValidationError{Field: "elements", Detail: fmt.Sprintf("child %d must not be nil", i)}
		}
	}
	return nil
}
