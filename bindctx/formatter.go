package bindctx

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrFormatter is the FormatterError category sentinel: TryApply
// wraps it when a format spec names no registered formatter, or when
// the formatter itself panics. Apply never surfaces this error — see
// its own doc comment — it exists for callers that want visibility
// into a formatter failure without that failure ever being allowed to
// fail the overall match.
var ErrFormatter = errors.New("formatter error")

// Formatter is a string-to-string transformation applied to a captured
// value before it is bound. Formatters never return an error to the
// caller: on internal failure they return the input unchanged, since a
// formatter error must never fail the overall match.
type Formatter func(input string, args []string) string

// Formatters is a read-only-at-match-time registry of named formatters,
// keyed by the formatter name used in a pattern's bindProperties format
// spec (e.g. "currency()" or "parseDate(2006-01-02)"). It is constructed
// once, typically at matcher-compile time, and may have new formatters
// registered at construction time but never during a match.
type Formatters struct {
	named map[string]Formatter
}

// NewFormatters creates a registry pre-populated with the built-in
// currency, trim, and parseDate formatters.
func NewFormatters() *Formatters {
	f := &Formatters{named: make(map[string]Formatter)}
	f.Register("currency", currencyFormatter)
	f.Register("trim", trimFormatter)
	f.Register("parseDate", parseDateFormatter)
	return f
}

// Register adds or replaces a named formatter.
func (f *Formatters) Register(name string, fn Formatter) {
	f.named[name] = fn
}

// Apply parses spec as "name(arg1, arg2, ...)", "name()", or a bare
// "name", looks the name up in the registry, and applies it to input. An
// empty spec, or a name with no registered formatter, passes input
// through unchanged. Errors are never surfaced here; use TryApply to
// observe them.
func (f *Formatters) Apply(spec, input string) string {
	result, _ := f.TryApply(spec, input)
	return result
}

// TryApply behaves like Apply but additionally reports an error
// wrapping ErrFormatter when spec names no registered formatter, or
// when the formatter panics on input. The result is always input
// unchanged in both of those cases, matching Apply's fallback; the
// error is purely informational for callers that want it (Apply
// discards it so a formatter failure never fails the overall match).
func (f *Formatters) TryApply(spec, input string) (string, error) {
	name, args := parseFormatterSpec(spec)
	if name == "" {
		return input, nil
	}
	fn, ok := f.named[name]
	if !ok {
		return input, fmt.Errorf("unknown formatter %q: %w", name, ErrFormatter)
	}
	return safeApply(fn, input, args)
}

// safeApply guards against a formatter implementation panicking on
// unexpected input; a FormatterError must never escape into the
// simulator or fail the overall match.
func safeApply(fn Formatter, input string, args []string) (result string, err error) {
	result = input
	defer func() {
		if r := recover(); r != nil {
			result = input
			err = fmt.Errorf("formatter panicked: %v: %w", r, ErrFormatter)
		}
	}()
	return fn(input, args), nil
}

func parseFormatterSpec(spec string) (name string, args []string) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", nil
	}
	open := strings.IndexByte(spec, '(')
	if open < 0 {
		return spec, nil
	}
	if !strings.HasSuffix(spec, ")") {
		return strings.TrimSpace(spec[:open]), nil
	}
	name = strings.TrimSpace(spec[:open])
	inner := spec[open+1 : len(spec)-1]
	if strings.TrimSpace(inner) == "" {
		return name, nil
	}
	parts := strings.Split(inner, ",")
	args = make([]string, len(parts))
	for i, p := range parts {
		args[i] = strings.TrimSpace(p)
	}
	return name, args
}

// currencyFormatter strips "$" and "," from a captured monetary string,
// e.g. "$1,234.50" -> "1234.50".
func currencyFormatter(input string, _ []string) string {
	r := strings.NewReplacer("$", "", ",", "")
	return r.Replace(input)
}

// trimFormatter strips leading and trailing whitespace.
func trimFormatter(input string, _ []string) string {
	return strings.TrimSpace(input)
}

// parseDateFormatter re-parses input against a Go reference-time layout
// given as the formatter's sole argument and re-renders it in that same
// layout, a best-effort normalization pass. On a parse failure the input
// is returned unchanged.
func parseDateFormatter(input string, args []string) string {
	if len(args) == 0 {
		return input
	}
	layout := args[0]
	t, err := time.Parse(layout, strings.TrimSpace(input))
	if err != nil {
		return input
	}
	return t.Format(layout)
}
