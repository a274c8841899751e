// Package literal provides types and operations for extracting literal sequences
// from regex patterns for prefilter optimization.
package literal

import (
	"regexp/syntax"
)

// ExtractorConfig configures limits on literal extraction, preventing
// excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals that hurt cache locality
//   - MaxClassSize: prevents expanding large character classes like [a-z]
//   - CrossProductLimit: bounds concatenation cross-product expansion
type ExtractorConfig struct {
	MaxLiterals       int
	MaxLiteralLen     int
	MaxClassSize      int
	CrossProductLimit int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:       64,
		MaxLiteralLen:     64,
		MaxClassSize:      10,
		CrossProductLimit: 250,
	}
}

// Extractor extracts required prefix literals from a compiled regex AST.
// A line whose text contains none of a pattern's prefix literals cannot
// match the pattern, so these literals drive a cheap Aho-Corasick
// prefilter ahead of the full regexp evaluation.
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes extracts prefix literals from the regex.
// Returns literals that must appear at the start of any match.
//
// Examples:
//
//	"hello"         -> ["hello"]
//	"(foo|bar)"     -> ["foo", "bar"]
//	"[abc]test"     -> ["atest", "btest", "ctest"]
//	"hello.*world"  -> ["hello"]
//	".*foo"         -> [] (no prefix requirement)
func (e *Extractor) ExtractPrefixes(re *syntax.Regexp) *Seq {
	return e.extractPrefixes(re, 0)
}

func (e *Extractor) extractPrefixes(re *syntax.Regexp, depth int) *Seq {
	// Case-insensitive subpatterns are skipped: the prefilter does
	// case-sensitive byte matching and would miss a folded literal.
	if depth > 100 || re.Flags&syntax.FoldCase != 0 {
		return NewSeq()
	}

	switch re.Op {
	case syntax.OpLiteral:
		b := runeSliceToBytes(re.Rune)
		if len(b) > e.config.MaxLiteralLen {
			b = b[:e.config.MaxLiteralLen]
		}
		return NewSeq(NewLiteral(b, true))

	case syntax.OpConcat:
		return e.extractPrefixesConcat(re, depth)

	case syntax.OpAlternate:
		// If any alternative has no prefix requirement, the whole
		// alternation has none: (abc|.*?) can start with anything.
		var allLits []Literal
		truncated := false
		for _, sub := range re.Sub {
			seq := e.extractPrefixes(sub, depth+1)
			if seq.IsEmpty() {
				return NewSeq()
			}
			for i := 0; i < seq.Len(); i++ {
				allLits = append(allLits, seq.Get(i))
				if len(allLits) >= e.config.MaxLiterals {
					truncated = true
					break
				}
			}
			if truncated {
				break
			}
		}
		if truncated {
			for i := range allLits {
				allLits[i].Complete = false
			}
		}
		return NewSeq(allLits...)

	case syntax.OpCharClass:
		return e.expandCharClass(re)

	case syntax.OpCapture:
		if len(re.Sub) == 0 {
			return NewSeq()
		}
		return e.extractPrefixes(re.Sub[0], depth+1)

	case syntax.OpStar, syntax.OpQuest, syntax.OpPlus:
		// Repetition makes the prefix optional or variable-length: no
		// single literal is guaranteed to occur.
		return NewSeq()

	case syntax.OpBeginLine, syntax.OpBeginText, syntax.OpEndLine, syntax.OpEndText:
		return NewSeq()

	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return NewSeq()

	default:
		return NewSeq()
	}
}

// extractPrefixesConcat walks a concatenation left to right, cross-producting
// accumulated literals with each literal or small character class, so that
// e.g. ag[act]gtaaa yields ["agagtaaa", "agcgtaaa", "agtgtaaa"] rather than
// stopping at "ag".
func (e *Extractor) extractPrefixesConcat(re *syntax.Regexp, depth int) *Seq {
	if len(re.Sub) == 0 {
		return NewSeq()
	}

	startIdx := 0
	for startIdx < len(re.Sub) {
		op := re.Sub[startIdx].Op
		if op == syntax.OpBeginLine || op == syntax.OpBeginText {
			startIdx++
			continue
		}
		break
	}
	if startIdx >= len(re.Sub) {
		return NewSeq()
	}

	crossLimit := e.config.CrossProductLimit
	if crossLimit <= 0 {
		crossLimit = 250
	}

	acc := NewSeq(NewLiteral([]byte{}, true))

	for i := startIdx; i < len(re.Sub); i++ {
		if !e.hasAnyExact(acc) {
			break
		}

		contribution := e.concatSubContribution(re.Sub[i], depth)
		if contribution == nil {
			e.markAllInexact(acc)
			break
		}

		acc.CrossForward(contribution)

		if acc.Len() > crossLimit || acc.Len() > e.config.MaxLiterals {
			acc = e.handleCrossProductOverflow(acc)
			break
		}

		e.enforceMaxLiteralLen(acc)
	}

	if acc.Len() == 1 && len(acc.Get(0).Bytes) == 0 {
		return NewSeq()
	}

	return acc
}

func (e *Extractor) concatSubContribution(sub *syntax.Regexp, depth int) *Seq {
	if sub.Flags&syntax.FoldCase != 0 {
		return nil
	}

	switch sub.Op {
	case syntax.OpLiteral:
		b := runeSliceToBytes(sub.Rune)
		return NewSeq(NewLiteral(b, true))

	case syntax.OpCharClass:
		expanded := e.expandCharClass(sub)
		if expanded.IsEmpty() {
			return nil
		}
		return expanded

	case syntax.OpAlternate:
		return e.expandAlternateContribution(sub, depth)

	case syntax.OpCapture:
		if len(sub.Sub) == 0 {
			return nil
		}
		return e.concatSubContribution(sub.Sub[0], depth)

	case syntax.OpRepeat:
		if sub.Min >= 1 && len(sub.Sub) > 0 {
			inner := e.concatSubContribution(sub.Sub[0], depth)
			if inner == nil {
				return nil
			}
			e.markAllInexact(inner)
			return inner
		}
		return nil

	default:
		return nil
	}
}

func (e *Extractor) expandAlternateContribution(alt *syntax.Regexp, depth int) *Seq {
	if alt.Op != syntax.OpAlternate {
		return nil
	}
	var allLits []Literal
	for _, sub := range alt.Sub {
		seq := e.extractPrefixes(sub, depth+1)
		if seq.IsEmpty() {
			return nil
		}
		for i := 0; i < seq.Len(); i++ {
			allLits = append(allLits, seq.Get(i))
			if len(allLits) > e.config.MaxLiterals {
				return nil
			}
		}
	}
	return NewSeq(allLits...)
}

func (e *Extractor) hasAnyExact(s *Seq) bool {
	for i := 0; i < s.Len(); i++ {
		if s.Get(i).Complete {
			return true
		}
	}
	return false
}

func (e *Extractor) markAllInexact(s *Seq) {
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}

func (e *Extractor) enforceMaxLiteralLen(s *Seq) {
	for i := range s.literals {
		if len(s.literals[i].Bytes) > e.config.MaxLiteralLen {
			s.literals[i].Bytes = s.literals[i].Bytes[:e.config.MaxLiteralLen]
			s.literals[i].Complete = false
		}
	}
}

// handleCrossProductOverflow truncates all literals to their first 4 bytes,
// deduplicates, and marks all as inexact once cross-product expansion
// exceeds its configured bound. This keeps the prefilter useful (a shorter
// required-substring set) instead of abandoning it outright.
func (e *Extractor) handleCrossProductOverflow(s *Seq) *Seq {
	s.KeepFirstBytes(4)
	e.markAllInexact(s)
	s.Dedup()

	if s.Len() > e.config.MaxLiterals {
		s.literals = s.literals[:e.config.MaxLiterals]
	}
	return s
}

// expandCharClass expands a small character class into individual-byte
// literals. Classes larger than MaxClassSize are left unexpanded (returns
// an empty Seq) since expanding e.g. [a-z] would produce 26 near-useless
// single-byte literals.
func (e *Extractor) expandCharClass(re *syntax.Regexp) *Seq {
	if re.Op != syntax.OpCharClass {
		return NewSeq()
	}

	count := 0
	for i := 0; i < len(re.Rune); i += 2 {
		lo, hi := re.Rune[i], re.Rune[i+1]
		count += int(hi-lo) + 1
		if count > e.config.MaxClassSize {
			return NewSeq()
		}
	}

	var lits []Literal
	for i := 0; i < len(re.Rune); i += 2 {
		lo, hi := re.Rune[i], re.Rune[i+1]
		for r := lo; r <= hi; r++ {
			b := []byte(string(r))
			if len(b) > e.config.MaxLiteralLen {
				b = b[:e.config.MaxLiteralLen]
			}
			lits = append(lits, NewLiteral(b, true))
			if len(lits) >= e.config.MaxLiterals {
				return NewSeq(lits...)
			}
		}
	}

	return NewSeq(lits...)
}

func runeSliceToBytes(runes []rune) []byte {
	return []byte(string(runes))
}
