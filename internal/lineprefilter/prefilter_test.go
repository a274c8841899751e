package lineprefilter

import (
	"testing"

	"github.com/coregx/docrex/literal"
	"github.com/coregx/docrex/pattern"
)

func TestBuildAndAccepts(t *testing.T) {
	line, err := pattern.NewLine(`^Invoice #(\d+)$`, nil, "")
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	filter := Build(line, literal.DefaultConfig(), 3)
	if filter == nil {
		t.Fatalf("Build returned nil, want a filter for a regex with a required prefix")
	}
	if !filter.Accepts("Invoice #12345") {
		t.Errorf("Accepts(%q) = false, want true", "Invoice #12345")
	}
	if filter.Accepts("Subtotal: 1.00") {
		t.Errorf("Accepts(%q) = true, want false (no required prefix present)", "Subtotal: 1.00")
	}
}

func TestBuildReturnsNilWhenNoUsableLiteral(t *testing.T) {
	line, err := pattern.NewLine(`.*`, nil, "")
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	if filter := Build(line, literal.DefaultConfig(), 3); filter != nil {
		t.Errorf("Build(.*) = %v, want nil (no extractable prefix)", filter)
	}
}

func TestNilFilterAcceptsEverything(t *testing.T) {
	var f *Filter
	if !f.Accepts("anything at all") {
		t.Errorf("nil Filter.Accepts should always return true")
	}
}

func TestLineWrapDelegatesToWrappedRegexAfterPassingFilter(t *testing.T) {
	line, err := pattern.NewLine(`^Invoice #(\d+)$`, []pattern.PropertyBinding{{Name: "id"}}, "")
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	if err := line.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	filter := Build(line, literal.DefaultConfig(), 3)
	wrapped := Wrap(line, filter)

	ok, _, captures := wrapped.Match("Invoice #12345")
	if !ok || captures[0] != "12345" {
		t.Fatalf("wrapped.Match = %v %v", ok, captures)
	}

	if ok, _, _ := wrapped.Match("Subtotal: 1.00"); ok {
		t.Errorf("wrapped.Match should reject via the prefilter before the regex even runs")
	}

	if wrapped.IsAnyLine() {
		t.Errorf("IsAnyLine() = true, want false (promoted unchanged from the wrapped Line)")
	}
}
