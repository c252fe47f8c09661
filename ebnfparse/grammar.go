// Package ebnfparse turns EBNF grammars, in the notation of
// golang.org/x/exp/ebnf, into comb parsers producing concrete syntax trees.
package ebnfparse

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

var log = commonlog.GetLogger("comb.ebnf")

// Load reads and parses a grammar file.
func Load(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar parses grammar source read from r. filename is only used in
// error positions.
func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Verify checks the productions reachable from start: every referenced
// production must be defined, and lexical productions may only refer to
// other lexical productions. Productions start cannot reach are ignored.
func Verify(grammar ebnf.Grammar, start string) error {
	return ebnf.Verify(Reachable(grammar, start), start)
}

// Reachable returns the subset of grammar that start refers to, directly or
// indirectly.
func Reachable(grammar ebnf.Grammar, start string) ebnf.Grammar {
	sub := make(ebnf.Grammar)
	var visit func(name string)
	visit = func(name string) {
		if _, seen := sub[name]; seen {
			return
		}
		prod, ok := grammar[name]
		if !ok {
			return
		}
		sub[name] = prod
		walkNames(prod.Expr, visit)
	}
	visit(start)
	return sub
}

// Errors flattens the error lists reported by golang.org/x/exp/ebnf into
// their individual errors.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Slice {
		return []error{err}
	}
	errs := make([]error, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if e, ok := v.Index(i).Interface().(error); ok {
			errs = append(errs, e)
		}
	}
	return errs
}

// Names returns the production names of grammar in sorted order.
func Names(grammar ebnf.Grammar) []string {
	names := make([]string, 0, len(grammar))
	for name := range grammar {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsLexical reports whether name denotes a lexical production. As in
// golang.org/x/exp/ebnf, names that do not start with an upper-case letter
// are lexical.
func IsLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

func walkNames(expr ebnf.Expression, f func(name string)) {
	switch e := expr.(type) {
	case ebnf.Alternative:
		for _, alt := range e {
			walkNames(alt, f)
		}
	case ebnf.Sequence:
		for _, item := range e {
			walkNames(item, f)
		}
	case *ebnf.Group:
		walkNames(e.Body, f)
	case *ebnf.Option:
		walkNames(e.Body, f)
	case *ebnf.Repetition:
		walkNames(e.Body, f)
	case *ebnf.Name:
		f(e.String)
	}
}

// leftRecursion finds a production that can reach itself without consuming
// input. Such a production would recurse forever under recursive descent.
func leftRecursion(grammar ebnf.Grammar) (string, bool) {
	nullable := nullableProductions(grammar)

	// leading reports the names that may be tried at the offset where expr
	// starts and returns whether expr can match empty input.
	var leading func(expr ebnf.Expression, f func(string)) bool
	leading = func(expr ebnf.Expression, f func(string)) bool {
		switch e := expr.(type) {
		case nil:
			return true
		case *ebnf.Name:
			f(e.String)
			return nullable[e.String]
		case *ebnf.Token:
			return e.String == ""
		case *ebnf.Range:
			return false
		case ebnf.Alternative:
			empty := false
			for _, alt := range e {
				if leading(alt, f) {
					empty = true
				}
			}
			return empty
		case ebnf.Sequence:
			for _, item := range e {
				if !leading(item, f) {
					return false
				}
			}
			return true
		case *ebnf.Group:
			return leading(e.Body, f)
		case *ebnf.Option:
			leading(e.Body, f)
			return true
		case *ebnf.Repetition:
			leading(e.Body, f)
			return true
		}
		return false
	}

	edges := make(map[string][]string, len(grammar))
	for name, prod := range grammar {
		leading(prod.Expr, func(ref string) {
			edges[name] = append(edges[name], ref)
		})
	}

	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(grammar))
	var cycle string
	var visit func(name string) bool
	visit = func(name string) bool {
		switch state[name] {
		case active:
			cycle = name
			return true
		case done:
			return false
		}
		state[name] = active
		for _, next := range edges[name] {
			if visit(next) {
				return true
			}
		}
		state[name] = done
		return false
	}
	for _, name := range Names(grammar) {
		if visit(name) {
			return cycle, true
		}
	}
	return "", false
}

// nullableProductions computes which productions can match empty input.
func nullableProductions(grammar ebnf.Grammar) map[string]bool {
	nullable := make(map[string]bool, len(grammar))

	var empty func(expr ebnf.Expression) bool
	empty = func(expr ebnf.Expression) bool {
		switch e := expr.(type) {
		case nil:
			return true
		case *ebnf.Name:
			return nullable[e.String]
		case *ebnf.Token:
			return e.String == ""
		case ebnf.Alternative:
			for _, alt := range e {
				if empty(alt) {
					return true
				}
			}
			return false
		case ebnf.Sequence:
			for _, item := range e {
				if !empty(item) {
					return false
				}
			}
			return true
		case *ebnf.Group:
			return empty(e.Body)
		case *ebnf.Option, *ebnf.Repetition:
			return true
		}
		return false
	}

	for changed := true; changed; {
		changed = false
		for name, prod := range grammar {
			if !nullable[name] && empty(prod.Expr) {
				nullable[name] = true
				changed = true
			}
		}
	}
	return nullable
}

func describeGrammar(grammar ebnf.Grammar) string {
	var sb strings.Builder
	for i, name := range Names(grammar) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
	}
	return sb.String()
}
