package comb

import (
	"strings"
	"testing"
)

func TestCursorCheckpoint(t *testing.T) {
	c := NewCursor[byte](Bytes("abc"))
	cp := c.Save()
	c.Next()
	c.Next()
	if c.Offset() != 2 {
		t.Fatalf("Offset = %d, want 2", c.Offset())
	}
	c.Rewind(cp)
	if c.Offset() != 0 {
		t.Errorf("Offset after Rewind = %d, want 0", c.Offset())
	}
	if c.LastPos() != 2 {
		t.Errorf("LastPos after Rewind = %d, want 2", c.LastPos())
	}
	if cp.Offset() != 0 {
		t.Errorf("Checkpoint.Offset = %d, want 0", cp.Offset())
	}
}

func TestCursorNextAtEnd(t *testing.T) {
	c := NewCursor[byte](Bytes("a"))
	at, tok := c.Next()
	if at != 0 || !tok.Ok || tok.Value != 'a' {
		t.Fatalf("Next = %d, %v, want 0, 'a'", at, tok)
	}
	for i := 0; i < 2; i++ {
		at, tok = c.Next()
		if tok.Ok {
			t.Errorf("Next past end returned %v", tok)
		}
		if at != 1 || c.Offset() != 1 {
			t.Errorf("Next past end = offset %d (cursor %d), want 1", at, c.Offset())
		}
	}
}

func TestStringOffsetsAreBytes(t *testing.T) {
	c := NewCursor[rune](String("héllo"))
	want := []struct {
		at  int
		tok rune
	}{
		{0, 'h'},
		{1, 'é'},
		{3, 'l'},
		{4, 'l'},
		{5, 'o'},
	}
	for _, w := range want {
		at, tok := c.Next()
		if at != w.at || tok.Value != w.tok {
			t.Errorf("Next = %d, %q, want %d, %q", at, tok.Value, w.at, w.tok)
		}
	}
	if got := SliceSpan[rune, string](c, Span{Start: 1, End: 4}); got != "él" {
		t.Errorf("SliceSpan = %q, want %q", got, "él")
	}
}

func TestSliceSpanSharesStorage(t *testing.T) {
	buf := []byte("hello world")
	c := NewCursor[byte](Bytes(buf))
	got := SliceSpan[byte, []byte](c, Span{Start: 6, End: 11})
	if string(got) != "world" {
		t.Fatalf("SliceSpan = %q, want %q", got, "world")
	}
	if &got[0] != &buf[6] {
		t.Error("SliceSpan copied the input")
	}
	if cap(got) != len(got) {
		t.Errorf("cap = %d, want %d", cap(got), len(got))
	}
}

type countdown int

func (n countdown) Next(offset int) (int, int, bool) {
	if offset >= int(n) {
		return offset, 0, false
	}
	return offset + 1, int(n) - offset, true
}

func TestSliceSpanUnsupported(t *testing.T) {
	c := NewCursor[int](countdown(3))
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("SliceSpan on an unsliceable input did not panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "does not support slicing") {
			t.Errorf("panic = %v", r)
		}
	}()
	SliceSpan[int, []int](c, Span{Start: 0, End: 1})
}

func TestTokensInput(t *testing.T) {
	toks := Tokens[string]{"let", "x", "=", "1"}
	out, err := Parse(Then(Just("let"), Any[string]()), toks)
	if err != nil {
		t.Fatal(err)
	}
	if out.Second != "x" {
		t.Errorf("Second = %q, want %q", out.Second, "x")
	}
}

func TestSpan(t *testing.T) {
	s := Span{Start: 2, End: 5}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
	if s.String() != "2..5" {
		t.Errorf("String = %q, want %q", s.String(), "2..5")
	}
}
