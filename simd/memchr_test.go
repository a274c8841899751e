package simd

import (
	"bytes"
	"testing"
)

func TestMemchr(t *testing.T) {
	tests := []struct {
		name     string
		haystack []byte
		needle   byte
		want     int
	}{
		{"empty_haystack", []byte{}, '\n', -1},
		{"single_match", []byte{'\n'}, '\n', 0},
		{"single_no_match", []byte{'a'}, '\n', -1},
		{"short_first_position", []byte("a\nb"), '\n', 1},
		{"short_not_found", []byte("abc"), '\n', -1},
		{"exactly_eight_bytes_match_at_start", []byte("\nbcdefgh"), '\n', 0},
		{"exactly_eight_bytes_match_at_end", []byte("abcdefg\n"), '\n', 7},
		{"exactly_eight_bytes_no_match", []byte("abcdefgh"), '\n', -1},
		{"spans_chunk_boundary", []byte("abcdefghijklmnop\n"), '\n', 16},
		{"multiple_occurrences_returns_first", []byte("a\nb\nc"), '\n', 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Memchr(tt.haystack, tt.needle)
			if got != tt.want {
				t.Errorf("Memchr(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
			if std := bytes.IndexByte(tt.haystack, tt.needle); got != std {
				t.Errorf("Memchr disagrees with bytes.IndexByte: got %d, want %d", got, std)
			}
		})
	}
}
