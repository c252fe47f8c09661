package comb

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// goBytes runs p on a fresh cursor over src.
func goBytes[O any](p Parser[byte, O], src string) (O, *Located[byte], *Cursor[byte]) {
	c := NewCursor[byte](Bytes(src))
	out, err := p.Go(c, ModeEmit)
	return out, err, c
}

func wantSimple(t *testing.T, err *Located[byte], pos int, want *Simple[byte]) {
	t.Helper()
	if err == nil {
		t.Fatalf("parse succeeded, want error at %d", pos)
	}
	if err.Pos != pos {
		t.Errorf("Pos = %d, want %d", err.Pos, pos)
	}
	if diff := cmp.Diff(Error[byte](want), err.Err); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
}

func TestEnd(t *testing.T) {
	if _, err, _ := goBytes(End[byte](), ""); err != nil {
		t.Errorf("End on empty input: %v", err)
	}

	_, err, c := goBytes(End[byte](), "x")
	wantSimple(t, err, 0, &Simple[byte]{
		Span:     Span{Start: 0, End: 1},
		Expected: []Maybe[byte]{None[byte]()},
		Found:    Some[byte]('x'),
	})
	if c.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", c.Offset())
	}
}

func TestEmpty(t *testing.T) {
	_, err, c := goBytes(Empty[byte](), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if c.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", c.Offset())
	}
}

func TestJust(t *testing.T) {
	p := Just[byte]('a', 'b', 'c')

	out, err, c := goBytes(p, "abcd")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "abc" {
		t.Errorf("out = %q, want %q", out, "abc")
	}
	if c.Offset() != 3 {
		t.Errorf("Offset = %d, want 3", c.Offset())
	}

	_, err, c = goBytes(p, "abd")
	wantSimple(t, err, 2, &Simple[byte]{
		Span:     Span{Start: 2, End: 3},
		Expected: []Maybe[byte]{Some[byte]('c')},
		Found:    Some[byte]('d'),
	})
	if c.Offset() != 2 {
		t.Errorf("Offset after failure = %d, want 2", c.Offset())
	}

	_, err, _ = goBytes(p, "ab")
	wantSimple(t, err, 2, &Simple[byte]{
		Span:     Span{Start: 2, End: 2},
		Expected: []Maybe[byte]{Some[byte]('c')},
		Found:    None[byte](),
	})
}

func TestJustString(t *testing.T) {
	out, err := Parse(JustString("héllo"), String("héllo world"))
	if err != nil {
		t.Fatal(err)
	}
	if out != "héllo" {
		t.Errorf("out = %q, want %q", out, "héllo")
	}

	_, err = Parse(JustString("hello"), String("héllo"))
	loc, ok := err.(*Located[rune])
	if !ok {
		t.Fatalf("err = %v, want *Located", err)
	}
	if loc.Pos != 1 {
		t.Errorf("Pos = %d, want 1", loc.Pos)
	}
}

func TestOneOf(t *testing.T) {
	p := OneOf[byte]('a', 'b', 'a')

	out, err, c := goBytes(p, "b")
	if err != nil || out != 'b' || c.Offset() != 1 {
		t.Errorf("got %q, %v at %d, want 'b' at 1", out, err, c.Offset())
	}

	tests := []struct {
		name  string
		input string
		found Maybe[byte]
		end   int
	}{
		{"mismatch", "c", Some[byte]('c'), 1},
		{"end of input", "", None[byte](), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err, c := goBytes(p, tt.input)
			wantSimple(t, err, 0, &Simple[byte]{
				Span:     Span{Start: 0, End: tt.end},
				Expected: []Maybe[byte]{Some[byte]('a'), Some[byte]('b')},
				Found:    tt.found,
			})
			if c.Offset() != 0 {
				t.Errorf("Offset = %d, want 0", c.Offset())
			}
		})
	}
}

func TestNoneOf(t *testing.T) {
	p := NoneOf[byte]('a', 'b')

	out, err, _ := goBytes(p, "c")
	if err != nil || out != 'c' {
		t.Errorf("got %q, %v, want 'c'", out, err)
	}

	_, err, c := goBytes(p, "a")
	wantSimple(t, err, 0, &Simple[byte]{Span: Span{Start: 0, End: 1}, Found: Some[byte]('a')})
	if c.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", c.Offset())
	}
}

func TestAny(t *testing.T) {
	out, err, _ := goBytes(Any[byte](), "x")
	if err != nil || out != 'x' {
		t.Errorf("got %q, %v, want 'x'", out, err)
	}

	_, err, _ = goBytes(Any[byte](), "")
	wantSimple(t, err, 0, &Simple[byte]{Found: None[byte]()})
}

func TestTakeUntil(t *testing.T) {
	p := TakeUntil(Just[byte](']'))

	out, err, c := goBytes(p, "1,2]rest")
	if err != nil {
		t.Fatal(err)
	}
	want := Pair[[]byte, []byte]{First: []byte("1,2"), Second: []byte("]")}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if c.Offset() != 4 {
		t.Errorf("Offset = %d, want 4", c.Offset())
	}

	_, err, _ = goBytes(p, "1,2")
	wantSimple(t, err, 3, &Simple[byte]{
		Span:     Span{Start: 3, End: 3},
		Expected: []Maybe[byte]{Some[byte](']')},
		Found:    None[byte](),
	})
}

func TestTakeUntilInto(t *testing.T) {
	count := TakeUntilInto(Just[byte](';'), func() int { return 0 }, func(n int, _ byte) int { return n + 1 })
	out, err, _ := goBytes(count, "abcd;")
	if err != nil {
		t.Fatal(err)
	}
	if out.First != 4 {
		t.Errorf("skipped = %d, want 4", out.First)
	}
}

func TestTakeUntilCheckMode(t *testing.T) {
	var pushed int
	p := TakeUntilInto(Just[byte](';'), func() []byte { return nil }, func(s []byte, b byte) []byte {
		pushed++
		return append(s, b)
	})
	c := NewCursor[byte](Bytes("abc;"))
	out, err := p.Go(c, ModeCheck)
	if err != nil {
		t.Fatal(err)
	}
	if pushed != 0 || out.First != nil {
		t.Errorf("check mode collected %q (%d pushes)", out.First, pushed)
	}
	if c.Offset() != 4 {
		t.Errorf("Offset = %d, want 4", c.Offset())
	}
}

func TestChoice(t *testing.T) {
	t.Run("first success wins", func(t *testing.T) {
		p := Choice(To(Just[byte]('a'), "first"), To(Just[byte]('a'), "second"))
		out, err, _ := goBytes(p, "a")
		if err != nil || out != "first" {
			t.Errorf("got %q, %v, want %q", out, err, "first")
		}
	})

	t.Run("backtracks between alternatives", func(t *testing.T) {
		p := Or(To(Just[byte]('a', 'b'), 1), To(Just[byte]('a', 'c'), 2))
		out, err, c := goBytes(p, "ac")
		if err != nil || out != 2 || c.Offset() != 2 {
			t.Errorf("got %d, %v at %d, want 2 at 2", out, err, c.Offset())
		}
	})

	t.Run("furthest error wins", func(t *testing.T) {
		p := Choice(Ignored(Just[byte]('a', 'b', 'c', 'd')), Ignored(Just[byte]('a', 'x')))
		_, err, c := goBytes(p, "abcz")
		wantSimple(t, err, 3, &Simple[byte]{
			Span:     Span{Start: 3, End: 4},
			Expected: []Maybe[byte]{Some[byte]('d')},
			Found:    Some[byte]('z'),
		})
		if c.Offset() != 0 {
			t.Errorf("Offset = %d, want 0", c.Offset())
		}
	})

	t.Run("ties merge", func(t *testing.T) {
		p := Choice(Just[byte]('a'), Just[byte]('b'))
		_, err, _ := goBytes(p, "c")
		wantSimple(t, err, 0, &Simple[byte]{
			Span:     Span{Start: 0, End: 1},
			Expected: []Maybe[byte]{Some[byte]('a'), Some[byte]('b')},
			Found:    Some[byte]('c'),
		})
	})

	t.Run("no alternatives", func(t *testing.T) {
		c := NewCursor[byte](Bytes("abc"))
		c.Next()
		c.Next()
		_, err := Choice[byte, struct{}]().Go(c, ModeEmit)
		if err == nil {
			t.Fatal("empty choice succeeded")
		}
		if err.Pos != 2 {
			t.Errorf("Pos = %d, want 2", err.Pos)
		}
	})
}

func TestTodo(t *testing.T) {
	p := Todo[byte, int]()
	defer func() {
		r := recover()
		msg, _ := r.(string)
		if !strings.Contains(msg, "attempted to use an unimplemented parser") {
			t.Errorf("panic = %v", r)
		}
	}()
	goBytes(p, "x")
	t.Error("Todo did not panic")
}
