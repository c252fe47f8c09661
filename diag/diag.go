// Package diag renders parse errors against the source they came from.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Position is a location in source text. Line and Column are 1-based;
// Column counts runes. LineStart is the byte offset of the line's first
// character.
type Position struct {
	Offset    int
	Line      int
	Column    int
	LineStart int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionAt converts a byte offset into src to a Position. Offsets past
// the end clamp to the end of src.
func PositionAt(src string, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	return Position{
		Offset:    offset,
		Line:      strings.Count(src[:lineStart], "\n") + 1,
		Column:    utf8.RuneCountInString(src[lineStart:offset]) + 1,
		LineStart: lineStart,
	}
}

// Diagnostic is a located error message.
type Diagnostic struct {
	Name    string
	Pos     Position
	Message string
}

func (d Diagnostic) String() string {
	if d.Name != "" {
		return fmt.Sprintf("%s:%s: %s", d.Name, d.Pos, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// FromError locates err in src. It reports false when err carries no
// offset.
func FromError(name, src string, err error) (Diagnostic, bool) {
	var located interface{ Offset() int }
	if !errors.As(err, &located) {
		return Diagnostic{}, false
	}
	msg := "parse error"
	if inner := errors.Unwrap(err); inner != nil {
		msg = inner.Error()
	}
	return Diagnostic{Name: name, Pos: PositionAt(src, located.Offset()), Message: msg}, true
}

// Render writes err with up to context lines of source on either side of
// the offending line, marking the line with "->" and the column with a
// caret. Errors without an offset are written as they are.
func Render(w io.Writer, name, src string, err error, context int) error {
	d, ok := FromError(name, src, err)
	if !ok {
		_, werr := fmt.Fprintln(w, err)
		return werr
	}

	var sb strings.Builder
	sb.WriteString(d.String())
	sb.WriteByte('\n')

	lines := strings.Split(src, "\n")
	errorLine := d.Pos.Line - 1
	first := max(errorLine-context, 0)
	last := min(errorLine+context, len(lines)-1)
	width := len(fmt.Sprint(last + 1))

	for i := first; i <= last; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		fmt.Fprintf(&sb, "%s %*d | %s\n", prefix, width, i+1, lines[i])
		if i == errorLine {
			fmt.Fprintf(&sb, "   %s | %s^\n", strings.Repeat(" ", width), padding(src[d.Pos.LineStart:d.Pos.Offset]))
		}
	}

	_, werr := io.WriteString(w, sb.String())
	return werr
}

// padding blanks out prefix, keeping tabs so the caret lines up with the
// rendered line.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
