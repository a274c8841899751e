package pattern

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern is the PatternCompilation category sentinel: every
// error this package returns from pattern-tree construction or Line
// compilation unwraps to it, so a caller can test for the category with
// errors.Is(err, pattern.ErrInvalidPattern) without caring which
// concrete struct produced it.
var ErrInvalidPattern = errors.New("invalid pattern")

// ValidationError reports a pattern-tree construction failure: an empty
// required name, a nil child, an empty Or, or a Repeat missing its
// child. It belongs to the PatternCompilation error category.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid pattern: %s: %s", e.Field, e.Detail)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidPattern }

// CompileError wraps a failure to compile a Line's regex source.
type CompileError struct {
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("pattern compilation failed for regex %q: %v", e.Source, e.Err)
}

// Unwrap exposes both the category sentinel and the underlying
// regexp-compile error, so errors.Is(err, pattern.ErrInvalidPattern) and
// errors.As(err, &syntaxErr) both work against the same CompileError.
func (e *CompileError) Unwrap() []error { return []error{ErrInvalidPattern, e.Err} }
