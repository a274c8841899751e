// Package docrex implements a document regular-expression engine: it
// matches whole text lines, not characters, against a tree-shaped
// pattern of groups, repeats, alternation, and line matchers, producing
// a nested record of the values the pattern's author chose to capture.
//
// A typical caller compiles a pattern once and reuses the resulting
// Matcher across many documents:
//
//	m, err := docrex.Compile(root)
//	if err != nil {
//	    // PatternCompilation error: malformed regex or invalid pattern tree
//	}
//	result := m.FindMatchString(document)
//	if !result.Success {
//	    fmt.Println(result.FailureReason)
//	}
//
// A compiled Matcher is immutable and safe for concurrent use: every
// FindMatch/FindMatchString call builds its own Binding Context and
// shares no mutable state with any other call.
package docrex
