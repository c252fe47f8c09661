// Package comb provides zero-copy parser combinators over arbitrary token streams.
//
// # Overview
//
// A grammar is assembled from small parser values: primitives such as Just,
// OneOf, Any and End, combined by Choice and the derived combinators (Then,
// Map, Repeated, SeparatedBy, ...). Running a grammar drives a Cursor over an
// Input and produces either a value or a Located error describing the furthest
// point the parse reached.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Cursor    │────▶│   Parser    │
//	│  (tokens)   │     │ (offset)    │     │  (graph)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │ Checkpoint  │     │  Located    │
//	                    │  / Rewind   │     │  errors     │
//	                    └─────────────┘     └─────────────┘
//
// # Inputs
//
// An Input is any token source addressable by offset:
//
//	type Input[T comparable] interface {
//	    Next(offset int) (next int, tok T, ok bool)
//	}
//
// Bytes, String and Tokens adapt byte slices, UTF-8 text and pre-lexed token
// slices. All three also implement SliceInput, so MapSlice can hand out views
// into the caller's buffer without copying.
//
// # Modes
//
// Every parser implements a single method:
//
//	Go(c *Cursor[T], m Mode) (O, *Located[T])
//
// The Mode is chosen by the entry point: Parse runs in ModeEmit and builds
// values, Check runs the identical control flow in ModeCheck and never calls
// the functions passed to Bind, Combine and MapValue. Combinators hold no
// mode-specific state, so one grammar serves both.
//
// # Errors
//
// Failures are values of the caller's choosing. An Errors builder constructs
// leaf errors from what was expected and what was found; Error.Merge unions
// two errors that failed at the same offset. Choice keeps the error that got
// furthest, and the entry points additionally report the furthest failure any
// backtracking combinator recovered from.
//
// Misusing the graph (defining a recursive parser twice, running one that was
// never defined, reaching Todo) is a programming error and panics.
//
// # Recursion
//
//	value := comb.Recursive(func(value comb.Parser[byte, struct{}]) comb.Parser[byte, struct{}] {
//	    return comb.Choice(
//	        comb.Ignored(comb.DelimitedBy(value, comb.Just[byte]('('), comb.Just[byte](')'))),
//	        comb.Empty[byte](),
//	    )
//	})
//
// The handle passed to the function is non-owning; the returned *Rec owns the
// definition. Declare and Define split the same steps for mutually recursive
// grammars.
//
// # Thread Safety
//
// A built graph is read-only and may be shared by concurrent parses. A Cursor
// belongs to a single parse.
package comb
