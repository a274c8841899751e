package docrex

import (
	"strings"

	"github.com/coregx/docrex/bindctx"
	"github.com/coregx/docrex/internal/lineprefilter"
	"github.com/coregx/docrex/linenfa"
	"github.com/coregx/docrex/pattern"
	"github.com/coregx/docrex/simd"
	"github.com/coregx/docrex/simulate"
)

// Matcher owns a compiled pattern, its Line-NFA, and the formatter
// registry. Compile (or CompileWithConfig) must produce it; the zero
// Matcher is not usable.
type Matcher struct {
	root *pattern.Root
	nfa  *linenfa.NFA
	sim  *simulate.Simulator
}

// Compile compiles root with DefaultConfig.
func Compile(root *pattern.Root) (*Matcher, error) {
	return CompileWithConfig(root, DefaultConfig())
}

// MustCompile is like Compile but panics on error, for use with
// patterns known valid at init time.
func MustCompile(root *pattern.Root) *Matcher {
	m, err := Compile(root)
	if err != nil {
		panic(err)
	}
	return m
}

// CompileWithConfig compiles every embedded line regex, builds the
// Line-NFA, and wires an Aho-Corasick prefilter in front of each Line's
// regex. Compilation is idempotent at the Line level (each Line caches
// its own compiled regex), but CompileWithConfig itself should be called
// once per pattern; build a new Matcher rather than recompiling in
// place.
func CompileWithConfig(root *pattern.Root, cfg Config) (*Matcher, error) {
	if err := compileLines(root); err != nil {
		return nil, err
	}

	nfa, err := linenfa.Build(root)
	if err != nil {
		return nil, err
	}

	nfa.RewriteLineMatchers(func(lm pattern.LineMatcher) pattern.LineMatcher {
		line, ok := lm.(*pattern.Line)
		if !ok {
			return lm // AnyLine already matches unconditionally
		}
		filter := lineprefilter.Build(line, cfg.Extractor, cfg.PrefilterMinLiteralLen)
		if filter == nil {
			return lm
		}
		return lineprefilter.Wrap(line, filter)
	})

	formatters := bindctx.NewFormatters()
	sim := simulate.New(nfa, root.BindObjectName, root.EditDistance, formatters, cfg.MaxSteps)

	return &Matcher{root: root, nfa: nfa, sim: sim}, nil
}

func compileLines(n pattern.Node) error {
	switch v := n.(type) {
	case *pattern.Line:
		return v.Compile()
	case *pattern.AnyLine:
		return nil
	case *pattern.Group:
		return compileAll(v.Children)
	case *pattern.Repeat:
		return compileLines(v.Child)
	case *pattern.Or:
		return compileAll(v.Children)
	case *pattern.Root:
		return compileAll(v.Children)
	default:
		return nil
	}
}

func compileAll(nodes []pattern.Node) error {
	for _, n := range nodes {
		if err := compileLines(n); err != nil {
			return err
		}
	}
	return nil
}

// FindMatch runs the pattern against an already-split sequence of
// document lines.
func (m *Matcher) FindMatch(lines []string) *simulate.Result {
	return m.sim.Run(lines)
}

// FindMatchString splits document into lines and runs the pattern
// against them. Splitting is on "\n"; an optional trailing "\r" on each
// line is trimmed, and a terminating newline does not produce a trailing
// empty line.
func (m *Matcher) FindMatchString(document string) *simulate.Result {
	return m.sim.Run(splitLines(document))
}

func splitLines(document string) []string {
	if len(document) == 0 {
		return nil
	}
	data := []byte(document)
	var lines []string
	pos := 0
	for {
		rel := simd.Memchr(data[pos:], '\n')
		if rel < 0 {
			lines = append(lines, trimCR(string(data[pos:])))
			return lines
		}
		lines = append(lines, trimCR(string(data[pos:pos+rel])))
		pos += rel + 1
		if pos >= len(data) {
			return lines
		}
	}
}

func trimCR(line string) string {
	return strings.TrimSuffix(line, "\r")
}
