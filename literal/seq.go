// Package literal provides types and operations for representing and manipulating
// literal byte sequences extracted from regex patterns.
//
// The primary use case is for prefilter optimization in regex engines: by extracting
// literal strings from patterns (e.g., "hello" from /hello.*world/), we can quickly
// filter out non-matching text before running the full regex automaton.
//
// Key concepts:
//   - A Literal is a concrete byte sequence that may appear in matches
//   - A Seq is a set of alternative literals (e.g., from alternations like /foo|bar/)
package literal

// Literal represents a literal byte sequence extracted from a regex pattern.
// The Complete flag indicates whether this literal represents a complete match
// (true) or just a prefix/substring of potential matches (false).
//
// Example:
//   - Pattern /hello/ → Literal{[]byte("hello"), true}
//   - Pattern /hello.*world/ → Literal{[]byte("hello"), false} (prefix only)
//   - Pattern /.*world/ → Literal{[]byte("world"), false} (suffix, but here treated as complete=false)
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal represents the entire match.
	// If true, matching this literal is sufficient (no regex engine needed).
	// If false, this literal is just a necessary prefix/substring.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
//
// Example:
//
//	lit := literal.NewLiteral([]byte("hello"), true)
//	fmt.Printf("%s (complete=%v)\n", lit.Bytes, lit.Complete)
//	// Output: hello (complete=true)
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
//
// Example:
//
//	lit := literal.NewLiteral([]byte("hello"), true)
//	fmt.Println(lit.Len()) // Output: 5
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
//
// Example:
//
//	lit := literal.NewLiteral([]byte("test"), true)
//	fmt.Println(lit.String()) // Output: literal{test, complete=true}
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq represents a sequence of alternative literals that can match.
// This is the foundation for prefilter optimization: we extract multiple
// possible literals from a regex (e.g., from alternations /foo|bar|baz/)
// and use them for fast candidate filtering.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Printf("Sequence has %d literals\n", seq.Len()) // Output: Sequence has 2 literals
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("hello"), true),
//	    literal.NewLiteral([]byte("world"), true),
//	)
//	fmt.Println(seq.Len()) // Output: 2
//
// Example with empty sequence:
//
//	seq := literal.NewSeq()
//	fmt.Println(seq.IsEmpty()) // Output: true
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Println(seq.Len()) // Output: 2
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("first"), true),
//	    literal.NewLiteral([]byte("second"), true),
//	)
//	fmt.Println(string(seq.Get(0).Bytes)) // Output: first
//	fmt.Println(string(seq.Get(1).Bytes)) // Output: second
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
//
// Example:
//
//	empty := literal.NewSeq()
//	fmt.Println(empty.IsEmpty()) // Output: true
//
//	nonempty := literal.NewSeq(literal.NewLiteral([]byte("x"), true))
//	fmt.Println(nonempty.IsEmpty()) // Output: false
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// CrossForward replaces this sequence's literals with the cross product of
// its current literals against other's literals: every existing literal is
// extended by every literal in other, by byte concatenation. A sequence
// with no literals contributes nothing and leaves s unchanged; an empty
// other is treated as a single empty, complete literal (the identity for
// concatenation).
//
// The Complete flag of a produced literal is true only when both the
// original literal and the contributed one were complete: appending an
// inexact fragment to an exact prefix makes the whole prefix inexact too.
//
// Example:
//
//	seq := literal.NewSeq(literal.NewLiteral([]byte("ag"), true))
//	seq.CrossForward(literal.NewSeq(
//	    literal.NewLiteral([]byte("a"), true),
//	    literal.NewLiteral([]byte("c"), true),
//	    literal.NewLiteral([]byte("t"), true),
//	))
//	// seq now holds "aga", "agc", "agt"
func (s *Seq) CrossForward(other *Seq) {
	if s == nil {
		return
	}
	if other.IsEmpty() {
		return
	}
	if s.IsEmpty() {
		s.literals = append([]Literal(nil), other.literals...)
		return
	}

	next := make([]Literal, 0, len(s.literals)*len(other.literals))
	for _, left := range s.literals {
		for _, right := range other.literals {
			combined := make([]byte, 0, len(left.Bytes)+len(right.Bytes))
			combined = append(combined, left.Bytes...)
			combined = append(combined, right.Bytes...)
			next = append(next, Literal{
				Bytes:    combined,
				Complete: left.Complete && right.Complete,
			})
		}
	}
	s.literals = next
}

// KeepFirstBytes truncates every literal in the sequence to at most n
// bytes, marking any truncated literal as incomplete (it no longer
// represents the whole of what it matched).
//
// Example:
//
//	seq := literal.NewSeq(literal.NewLiteral([]byte("hello"), true))
//	seq.KeepFirstBytes(3)
//	fmt.Println(string(seq.Get(0).Bytes)) // Output: hel
func (s *Seq) KeepFirstBytes(n int) {
	if s.IsEmpty() || n < 0 {
		return
	}
	for i := range s.literals {
		if len(s.literals[i].Bytes) > n {
			s.literals[i].Bytes = s.literals[i].Bytes[:n]
			s.literals[i].Complete = false
		}
	}
}

// Dedup removes duplicate literals (same bytes and same Complete flag),
// preserving the first occurrence's order.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), false),
//	    literal.NewLiteral([]byte("foo"), false),
//	    literal.NewLiteral([]byte("bar"), false),
//	)
//	seq.Dedup()
//	fmt.Println(seq.Len()) // Output: 2
func (s *Seq) Dedup() {
	if s.IsEmpty() {
		return
	}

	type key struct {
		b string
		c bool
	}
	seen := make(map[key]bool, len(s.literals))
	kept := make([]Literal, 0, len(s.literals))
	for _, lit := range s.literals {
		k := key{b: string(lit.Bytes), c: lit.Complete}
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, lit)
	}
	s.literals = kept
}
