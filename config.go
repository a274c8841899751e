package docrex

import "github.com/coregx/docrex/literal"

// Config tunes a Matcher's compiled behavior. The zero Config is not
// directly usable; start from DefaultConfig and override individual
// fields.
type Config struct {
	// MaxSteps bounds the number of simulator transitions taken per
	// FindMatch call before the match is abandoned as an "Internal
	// matching error" failure. Guards against pathological patterns (wide
	// Or nodes evaluated against very long documents) consuming unbounded
	// CPU in a single call. Zero or negative disables the budget.
	MaxSteps int

	// PrefilterMinLiteralLen is the shortest extracted literal worth
	// building an Aho-Corasick prefilter around for a given Line. Very
	// short literals (a single byte) reject almost nothing and aren't
	// worth the automaton-construction cost.
	PrefilterMinLiteralLen int

	// Extractor configures the literal-prefix extraction feeding the
	// prefilter.
	Extractor literal.ExtractorConfig
}

// DefaultConfig returns the Config a plain Compile call uses.
func DefaultConfig() Config {
	return Config{
		MaxSteps:               1_000_000,
		PrefilterMinLiteralLen: 3,
		Extractor:              literal.DefaultConfig(),
	}
}
