package literal

import (
	"regexp/syntax"
	"testing"
)

func parse(t *testing.T, pattern string) *syntax.Regexp {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("syntax.Parse(%q): %v", pattern, err)
	}
	return re.Simplify()
}

func TestExtractPrefixesLiteral(t *testing.T) {
	e := New(DefaultConfig())
	seq := e.ExtractPrefixes(parse(t, "^Invoice #"))
	if seq.IsEmpty() {
		t.Fatalf("expected a prefix literal for an anchored literal regex")
	}
	found := false
	for i := 0; i < seq.Len(); i++ {
		if string(seq.Get(i).Bytes) == "Invoice #" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q among extracted prefixes, got %v", "Invoice #", seqBytes(t, seq))
	}
}

func TestExtractPrefixesAlternation(t *testing.T) {
	e := New(DefaultConfig())
	seq := e.ExtractPrefixes(parse(t, "^(foo|bar)"))
	got := map[string]bool{}
	for i := 0; i < seq.Len(); i++ {
		got[string(seq.Get(i).Bytes)] = true
	}
	if !got["foo"] || !got["bar"] {
		t.Errorf("ExtractPrefixes(^(foo|bar)) = %v, want foo and bar present", got)
	}
}

func TestExtractPrefixesNoPrefixRequirement(t *testing.T) {
	e := New(DefaultConfig())
	seq := e.ExtractPrefixes(parse(t, ".*foo"))
	if !seq.IsEmpty() {
		t.Errorf("ExtractPrefixes(.*foo) = %v, want empty (no guaranteed prefix)", seqBytes(t, seq))
	}
}

func TestExtractPrefixesCaseInsensitiveSkipped(t *testing.T) {
	e := New(DefaultConfig())
	seq := e.ExtractPrefixes(parse(t, "(?i)hello"))
	if !seq.IsEmpty() {
		t.Errorf("ExtractPrefixes((?i)hello) = %v, want empty (fold-case skipped)", seqBytes(t, seq))
	}
}

func TestExtractPrefixesCharClassExpansion(t *testing.T) {
	e := New(DefaultConfig())
	seq := e.ExtractPrefixes(parse(t, "^[ab]x"))
	got := map[string]bool{}
	for i := 0; i < seq.Len(); i++ {
		got[string(seq.Get(i).Bytes)] = true
	}
	if !got["ax"] || !got["bx"] {
		t.Errorf("ExtractPrefixes(^[ab]x) = %v, want ax and bx", got)
	}
}
