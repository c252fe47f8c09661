package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/comb/json"
)

// ValueEncoder writes a JSON value as an indented summary, one line per
// value. Strings and keys are printed as they appear in the source.
type ValueEncoder struct {
	w     io.Writer
	value json.Value
}

func NewValueEncoder(w io.Writer) *ValueEncoder {
	return &ValueEncoder{w: w}
}

func (e *ValueEncoder) Encode(v json.Value) error {
	e.value = v
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ValueEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	writeValue(&sb, "", e.value, 0)
	return []byte(sb.String()), nil
}

func writeValue(sb *strings.Builder, label string, v json.Value, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(label)

	switch v.Kind {
	case json.KindNull:
		sb.WriteString("null\n")
	case json.KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool))
		sb.WriteByte('\n')
	case json.KindNumber:
		sb.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
		sb.WriteByte('\n')
	case json.KindString:
		fmt.Fprintf(sb, "\"%s\"\n", v.Str)
	case json.KindArray:
		fmt.Fprintf(sb, "array (%s)\n", plural(len(v.Array), "item"))
		for _, item := range v.Array {
			writeValue(sb, "", item, depth+1)
		}
	case json.KindObject:
		fmt.Fprintf(sb, "object (%s)\n", plural(len(v.Object), "member"))
		for _, m := range v.Object {
			writeValue(sb, fmt.Sprintf("\"%s\": ", m.Key), m.Value, depth+1)
		}
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
