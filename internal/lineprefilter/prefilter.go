// Package lineprefilter builds a cheap Aho-Corasick literal prefilter
// for a single Line node: before the (comparatively expensive) per-line
// regex runs, the prefilter does one pass over the candidate line to
// check whether any of the regex's required prefix literals occur at
// all. A line containing none of them cannot match, so the regex never
// needs to run against it.
package lineprefilter

import (
	"regexp/syntax"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/docrex/literal"
	"github.com/coregx/docrex/pattern"
)

// Filter wraps an Aho-Corasick automaton built from one Line's required
// prefix literals.
type Filter struct {
	automaton *ahocorasick.Automaton
}

// Build extracts prefix literals from line's regex source and, if any
// survive minLiteralLen, compiles them into a Filter. It returns nil
// (disabling the prefilter for this line, never an error) when the
// regex has no extractable prefix, when every extracted literal is
// shorter than minLiteralLen, or when the regex source itself fails to
// parse as a syntax tree — the prefilter is a pure optimization, so any
// of these just means the full regex runs unfiltered, the same as it
// always would without this package.
func Build(line *pattern.Line, cfg literal.ExtractorConfig, minLiteralLen int) *Filter {
	ast, err := syntax.Parse(line.Source, syntax.Perl)
	if err != nil {
		return nil
	}

	seq := literal.New(cfg).ExtractPrefixes(ast)
	if seq.IsEmpty() {
		return nil
	}

	builder := ahocorasick.NewBuilder()
	added := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		if lit.Len() < minLiteralLen {
			continue
		}
		builder.AddPattern(lit.Bytes)
		added++
	}
	if added == 0 {
		return nil
	}

	automaton, err := builder.Build()
	if err != nil {
		return nil
	}
	return &Filter{automaton: automaton}
}

// Accepts reports whether line could possibly satisfy the regex this
// filter was built from. A false result is conclusive (the regex is
// guaranteed not to match); a true result means the regex must still be
// run to know for sure.
func (f *Filter) Accepts(line string) bool {
	if f == nil {
		return true
	}
	return f.automaton.IsMatch([]byte(line))
}

// Line wraps a *pattern.Line with its Filter, so that Match rejects a
// candidate line in one cheap pass before ever invoking the regex
// engine. It implements pattern.LineMatcher via embedding (Bindings and
// IsAnyLine are promoted unchanged from the wrapped Line).
type Line struct {
	*pattern.Line
	filter *Filter
}

// Wrap decorates line with filter. If filter is nil, Wrap still returns
// a usable Line whose Match simply always consults the regex (Filter's
// nil receiver Accepts always returns true).
func Wrap(line *pattern.Line, filter *Filter) *Line {
	return &Line{Line: line, filter: filter}
}

// Match rejects the line via the Aho-Corasick prefilter before falling
// back to the wrapped Line's regex match.
func (l *Line) Match(line string) (bool, string, []string) {
	if !l.filter.Accepts(line) {
		return false, "", nil
	}
	return l.Line.Match(line)
}
