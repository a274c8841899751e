// Package simd provides SWAR (SIMD Within A Register) byte-search primitives
// used to split documents into lines without falling back to a naive
// byte-by-byte scan.
package simd

import (
	"encoding/binary"
	"math/bits"
)

// Memchr returns the index of the first instance of needle in haystack, or -1
// if needle is not present. It processes 8 bytes at a time using uint64
// bitwise operations once the haystack is long enough to amortize the setup
// cost, and falls back to a byte-by-byte scan otherwise.
func Memchr(haystack []byte, needle byte) int {
	haystackLen := len(haystack)
	if haystackLen == 0 {
		return -1
	}

	if haystackLen < 8 {
		for idx := 0; idx < haystackLen; idx++ {
			if haystack[idx] == needle {
				return idx
			}
		}
		return -1
	}

	// Broadcast needle to all 8 bytes of a uint64: needle=0x42 -> 0x4242424242424242.
	needleMask := uint64(needle) * 0x0101010101010101

	idx := 0
	for idx+8 <= haystackLen {
		chunk := binary.LittleEndian.Uint64(haystack[idx:])

		// XOR turns matching bytes into 0x00; the zero-byte detection formula
		// below (Hacker's Delight) then finds the first such byte, if any.
		xor := chunk ^ needleMask
		const lo8 = 0x0101010101010101
		const hi8 = 0x8080808080808080
		hasZero := (xor - lo8) & ^xor & hi8

		if hasZero != 0 {
			return idx + bits.TrailingZeros64(hasZero)/8
		}
		idx += 8
	}

	for idx < haystackLen {
		if haystack[idx] == needle {
			return idx
		}
		idx++
	}

	return -1
}
