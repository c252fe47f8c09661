package comb

import "unicode/utf8"

// Bytes reads a byte slice one byte at a time.
type Bytes []byte

func (b Bytes) Next(offset int) (int, byte, bool) {
	if offset >= len(b) {
		return offset, 0, false
	}
	return offset + 1, b[offset], true
}

// Slice returns a view of the original slice, capped so appends copy.
func (b Bytes) Slice(span Span) []byte {
	return b[span.Start:span.End:span.End]
}

// String reads UTF-8 text one rune at a time. Offsets are byte offsets, so
// spans index the original string directly.
type String string

func (s String) Next(offset int) (int, rune, bool) {
	if offset >= len(s) {
		return offset, 0, false
	}
	r, n := utf8.DecodeRuneInString(string(s[offset:]))
	return offset + n, r, true
}

func (s String) Slice(span Span) string {
	return string(s[span.Start:span.End])
}

// Tokens reads a pre-lexed token slice.
type Tokens[T comparable] []T

func (t Tokens[T]) Next(offset int) (int, T, bool) {
	if offset >= len(t) {
		var zero T
		return offset, zero, false
	}
	return offset + 1, t[offset], true
}

func (t Tokens[T]) Slice(span Span) []T {
	return t[span.Start:span.End:span.End]
}
