package literal

import "testing"

func seqBytes(t *testing.T, s *Seq) []string {
	t.Helper()
	out := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		out[i] = string(s.Get(i).Bytes)
	}
	return out
}

func TestSeqCrossForwardCombinesEveryPair(t *testing.T) {
	left := NewSeq(NewLiteral([]byte("foo"), true), NewLiteral([]byte("bar"), true))
	right := NewSeq(NewLiteral([]byte("1"), true), NewLiteral([]byte("2"), true))

	left.CrossForward(right)

	got := seqBytes(t, left)
	want := []string{"foo1", "foo2", "bar1", "bar2"}
	if len(got) != len(want) {
		t.Fatalf("CrossForward result = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSeqCrossForwardCompleteness(t *testing.T) {
	left := NewSeq(NewLiteral([]byte("a"), true))
	right := NewSeq(NewLiteral([]byte("b"), false))
	left.CrossForward(right)
	if left.Get(0).Complete {
		t.Errorf("Complete = true, want false when either side is incomplete")
	}
}

func TestSeqCrossForwardWithEmptyLeftAdoptsRight(t *testing.T) {
	left := NewSeq()
	right := NewSeq(NewLiteral([]byte("x"), true))
	left.CrossForward(right)
	if left.Len() != 1 || string(left.Get(0).Bytes) != "x" {
		t.Errorf("CrossForward from empty left = %v", seqBytes(t, left))
	}
}

func TestSeqCrossForwardWithEmptyRightIsNoop(t *testing.T) {
	left := NewSeq(NewLiteral([]byte("a"), true))
	right := NewSeq()
	left.CrossForward(right)
	if left.Len() != 1 || string(left.Get(0).Bytes) != "a" {
		t.Errorf("CrossForward with empty right mutated left: %v", seqBytes(t, left))
	}
}

func TestSeqKeepFirstBytesTruncatesAndMarksIncomplete(t *testing.T) {
	s := NewSeq(NewLiteral([]byte("hello"), true), NewLiteral([]byte("hi"), true))
	s.KeepFirstBytes(3)

	if string(s.Get(0).Bytes) != "hel" || s.Get(0).Complete {
		t.Errorf("Get(0) = %+v, want truncated+incomplete", s.Get(0))
	}
	if string(s.Get(1).Bytes) != "hi" || !s.Get(1).Complete {
		t.Errorf("Get(1) = %+v, want untouched (shorter than n)", s.Get(1))
	}
}

func TestSeqDedupRemovesExactDuplicatesOnly(t *testing.T) {
	s := NewSeq(
		NewLiteral([]byte("foo"), false),
		NewLiteral([]byte("foo"), false),
		NewLiteral([]byte("foo"), true),
		NewLiteral([]byte("bar"), false),
	)
	s.Dedup()
	if s.Len() != 3 {
		t.Fatalf("Dedup left %d literals, want 3 (dedup is keyed on bytes+Complete)", s.Len())
	}
}
