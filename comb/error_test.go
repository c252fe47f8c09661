package comb

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func simpleAt(pos int, found Maybe[byte], expected ...Maybe[byte]) *Located[byte] {
	return At[byte](pos, &Simple[byte]{Span: Span{Start: pos, End: pos + 1}, Expected: expected, Found: found})
}

func TestPrioritize(t *testing.T) {
	near := simpleAt(1, Some[byte]('x'), Some[byte]('a'))
	far := simpleAt(4, Some[byte]('y'), Some[byte]('b'))

	tests := []struct {
		name string
		l, r *Located[byte]
		want *Located[byte]
	}{
		{"both nil", nil, nil, nil},
		{"nil receiver", nil, near, near},
		{"nil argument", near, nil, near},
		{"receiver further", far, near, far},
		{"argument further", near, far, far},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.l.Prioritize(tt.r, mergeErrors[byte])
			if got != tt.want {
				t.Errorf("Prioritize = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrioritizeMergesTies(t *testing.T) {
	a := simpleAt(2, Some[byte]('x'), Some[byte]('a'), Some[byte]('b'))
	b := simpleAt(2, Some[byte]('x'), Some[byte]('b'), Some[byte]('c'))
	got := a.Prioritize(b, mergeErrors[byte])
	want := simpleAt(2, Some[byte]('x'), Some[byte]('a'), Some[byte]('b'), Some[byte]('c'))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged error mismatch (-want +got):\n%s", diff)
	}
}

func TestSimpleError(t *testing.T) {
	tests := []struct {
		name     string
		found    Maybe[byte]
		expected []Maybe[byte]
		want     string
	}{
		{"nothing expected", Some[byte]('x'), nil, "unexpected 'x'"},
		{"one", Some[byte]('x'), []Maybe[byte]{Some[byte]('a')}, "unexpected 'x', expected 'a'"},
		{"two", Some[byte]('x'), []Maybe[byte]{Some[byte]('a'), Some[byte]('b')}, "unexpected 'x', expected 'a' or 'b'"},
		{"three", Some[byte]('x'), []Maybe[byte]{Some[byte]('a'), Some[byte]('b'), Some[byte]('c')}, "unexpected 'x', expected 'a', 'b' or 'c'"},
		{"end of input", None[byte](), []Maybe[byte]{Some[byte](']')}, "unexpected end of input, expected ']'"},
		{"expected end", Some[byte]('z'), []Maybe[byte]{None[byte]()}, "unexpected 'z', expected end of input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &Simple[byte]{Found: tt.found, Expected: tt.expected}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocatedError(t *testing.T) {
	err := simpleAt(3, None[byte](), Some[byte](']'))
	if got, want := err.Error(), "offset 3: unexpected end of input, expected ']'"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var simple *Simple[byte]
	if !errors.As(err, &simple) {
		t.Fatal("errors.As did not find *Simple")
	}

	var positioned interface{ Offset() int }
	if !errors.As(error(err), &positioned) || positioned.Offset() != 3 {
		t.Errorf("errors.As offset = %v, want 3", positioned)
	}

	silent := At[byte](7, Silent[byte]{})
	if got, want := silent.Error(), "offset 7: parse error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFormatToken(t *testing.T) {
	tests := []struct {
		tok  any
		want string
	}{
		{byte('a'), "'a'"},
		{byte(0xff), "0xff"},
		{'é', "'é'"},
		{"let", `"let"`},
		{42, "42"},
		{Span{Start: 1, End: 2}, "1..2"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatToken(tt.tok); got != tt.want {
				t.Errorf("formatToken(%v) = %q, want %q", tt.tok, got, tt.want)
			}
		})
	}
}

func TestWithErrors(t *testing.T) {
	p := Just[byte]('a', 'b')

	_, err := Parse(p, Bytes("ax"), WithErrors(CheapErrors[byte]()))
	var loc *Located[byte]
	if !errors.As(err, &loc) {
		t.Fatalf("err = %v, want *Located", err)
	}
	if diff := cmp.Diff(Error[byte](Cheap[byte]{Span: Span{Start: 1, End: 2}}), loc.Err); diff != "" {
		t.Errorf("cheap error mismatch (-want +got):\n%s", diff)
	}

	_, err = Parse(p, Bytes("ax"), WithErrors(SilentErrors[byte]()))
	if !errors.As(err, &loc) {
		t.Fatalf("err = %v, want *Located", err)
	}
	if _, ok := loc.Err.(Silent[byte]); !ok || loc.Pos != 1 {
		t.Errorf("silent error = %#v at %d", loc.Err, loc.Pos)
	}
}
