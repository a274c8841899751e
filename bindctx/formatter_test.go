package bindctx

import (
	"errors"
	"testing"
)

func TestFormattersCurrency(t *testing.T) {
	f := NewFormatters()
	got := f.Apply("currency()", "$1,234.50")
	if got != "1234.50" {
		t.Errorf("currency() = %q, want %q", got, "1234.50")
	}
}

func TestFormattersTrim(t *testing.T) {
	f := NewFormatters()
	got := f.Apply("trim", "  hello  ")
	if got != "hello" {
		t.Errorf("trim = %q, want %q", got, "hello")
	}
}

func TestFormattersParseDateNormalizes(t *testing.T) {
	f := NewFormatters()
	got := f.Apply("parseDate(2006-01-02)", "2026-07-31")
	if got != "2026-07-31" {
		t.Errorf("parseDate = %q, want %q", got, "2026-07-31")
	}
}

func TestFormattersParseDateFallsBackOnParseFailure(t *testing.T) {
	f := NewFormatters()
	got := f.Apply("parseDate(2006-01-02)", "not-a-date")
	if got != "not-a-date" {
		t.Errorf("parseDate fallback = %q, want input unchanged", got)
	}
}

func TestFormattersUnknownNamePassesThrough(t *testing.T) {
	f := NewFormatters()
	got := f.Apply("doesNotExist()", "value")
	if got != "value" {
		t.Errorf("unknown formatter = %q, want input unchanged", got)
	}
}

func TestFormattersEmptySpecPassesThrough(t *testing.T) {
	f := NewFormatters()
	if got := f.Apply("", "value"); got != "value" {
		t.Errorf("empty spec = %q, want input unchanged", got)
	}
}

func TestFormattersApplyNeverPanics(t *testing.T) {
	f := NewFormatters()
	f.Register("explode", func(input string, args []string) string {
		panic("boom")
	})
	got := f.Apply("explode()", "value")
	if got != "value" {
		t.Errorf("panicking formatter result = %q, want input unchanged", got)
	}
}

func TestTryApplyReportsErrFormatterOnUnknownName(t *testing.T) {
	f := NewFormatters()
	got, err := f.TryApply("doesNotExist()", "value")
	if got != "value" {
		t.Errorf("result = %q, want input unchanged", got)
	}
	if !errors.Is(err, ErrFormatter) {
		t.Errorf("err = %v, want it to wrap ErrFormatter", err)
	}
}

func TestTryApplyReportsErrFormatterOnPanic(t *testing.T) {
	f := NewFormatters()
	f.Register("explode", func(input string, args []string) string {
		panic("boom")
	})
	got, err := f.TryApply("explode()", "value")
	if got != "value" {
		t.Errorf("result = %q, want input unchanged", got)
	}
	if !errors.Is(err, ErrFormatter) {
		t.Errorf("err = %v, want it to wrap ErrFormatter", err)
	}
}

func TestTryApplyNilErrorOnSuccess(t *testing.T) {
	f := NewFormatters()
	got, err := f.TryApply("trim", "  hi  ")
	if got != "hi" || err != nil {
		t.Errorf("TryApply = (%q, %v), want (\"hi\", nil)", got, err)
	}
}

func TestParseFormatterSpecVariants(t *testing.T) {
	tests := []struct {
		spec     string
		wantName string
		wantArgs []string
	}{
		{"currency()", "currency", nil},
		{"trim", "trim", nil},
		{"parseDate(2006-01-02)", "parseDate", []string{"2006-01-02"}},
		{"format(a, b, c)", "format", []string{"a", "b", "c"}},
		{"", "", nil},
	}
	for _, tt := range tests {
		name, args := parseFormatterSpec(tt.spec)
		if name != tt.wantName {
			t.Errorf("parseFormatterSpec(%q) name = %q, want %q", tt.spec, name, tt.wantName)
		}
		if len(args) != len(tt.wantArgs) {
			t.Errorf("parseFormatterSpec(%q) args = %v, want %v", tt.spec, args, tt.wantArgs)
			continue
		}
		for i := range args {
			if args[i] != tt.wantArgs[i] {
				t.Errorf("parseFormatterSpec(%q) args[%d] = %q, want %q", tt.spec, i, args[i], tt.wantArgs[i])
			}
		}
	}
}
