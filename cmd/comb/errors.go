package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/comb/diag"
	"github.com/dhamidi/comb/ebnfparse"
)

// errReported marks errors whose details were already written to the user.
var errReported = errors.New("reported")

// reportParseError renders err against src and returns an error that main
// will not print again.
func reportParseError(w io.Writer, name, src string, err error, context int) error {
	if rerr := diag.Render(w, name, src, err, context); rerr != nil {
		return fmt.Errorf("write diagnostic: %w", rerr)
	}
	return fmt.Errorf("%w: %s", errReported, name)
}

// printErrors writes each error of a grammar error list on its own line.
func printErrors(w io.Writer, err error) error {
	for _, e := range ebnfparse.Errors(err) {
		fmt.Fprintln(w, e)
	}
	return fmt.Errorf("%w: %v", errReported, err)
}
