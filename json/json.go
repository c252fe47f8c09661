// Package json is a JSON grammar written with comb. String and key values
// are views of the input; nothing is copied or unescaped while parsing.
package json

import (
	stdjson "encoding/json"
	"fmt"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/dhamidi/comb/comb"
)

// Kind identifies the type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is a parsed JSON value. Only the fields matching Kind are set.
// Str holds the raw bytes between the quotes, escapes included. The
// parser only accepts valid UTF-8, so Str always is.
type Value struct {
	Kind   Kind
	Bool   bool
	Num    float64
	Str    []byte
	Array  []Value
	Object []Member
}

// Member is one key/value pair of an object, in source order.
type Member struct {
	Key   []byte
	Value Value
}

// Text decodes the escapes of a string value.
func (v Value) Text() (string, error) {
	if v.Kind != KindString {
		return "", fmt.Errorf("json: Text called on %s value", v.Kind)
	}
	quoted := make([]byte, 0, len(v.Str)+2)
	quoted = append(quoted, '"')
	quoted = append(quoted, v.Str...)
	quoted = append(quoted, '"')
	var s string
	if err := stdjson.Unmarshal(quoted, &s); err != nil {
		return "", fmt.Errorf("json: decode string: %w", err)
	}
	return s, nil
}

// Get returns the last member of an object named key.
func (v Value) Get(key string) (Value, bool) {
	for i := len(v.Object) - 1; i >= 0; i-- {
		if string(v.Object[i].Key) == key {
			return v.Object[i].Value, true
		}
	}
	return Value{}, false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// Parser builds the grammar for a single JSON value surrounded by optional
// whitespace. It does not require the value to end the input.
func Parser() comb.Parser[byte, Value] {
	return comb.Recursive(func(value comb.Parser[byte, Value]) comb.Parser[byte, Value] {
		digit := comb.Filter(isDigit)
		digits := comb.AtLeast(digit, 1)

		integer := comb.Or(
			comb.Ignored(comb.Just[byte]('0')),
			comb.Ignored(comb.Then(comb.Filter(func(b byte) bool { return b >= '1' && b <= '9' }), comb.Repeated(digit))),
		)
		frac := comb.Ignored(comb.Then(comb.Just[byte]('.'), digits))
		exp := comb.Ignored(comb.Then(
			comb.Then(comb.OneOf[byte]('e', 'E'), comb.OrNot(comb.OneOf[byte]('+', '-'))),
			digits,
		))
		number := comb.MapSlice(
			comb.Then(comb.Then(comb.Then(comb.OrNot(comb.Just[byte]('-')), integer), comb.OrNot(frac)), comb.OrNot(exp)),
			func(b []byte) Value {
				// The grammar only admits valid literals; out of range values
				// come back as ±Inf.
				n, _ := strconv.ParseFloat(string(b), 64)
				return Value{Kind: KindNumber, Num: n}
			},
		)

		hex := comb.Filter(isHex)
		escape := comb.IgnoreThen(comb.Just[byte]('\\'), comb.Or(
			comb.Ignored(comb.OneOf[byte]('"', '\\', '/', 'b', 'f', 'n', 'r', 't')),
			comb.Ignored(comb.Then(comb.Just[byte]('u'), comb.Then(comb.Then(hex, hex), comb.Then(hex, hex)))),
		))
		char := comb.Choice(
			comb.Ignored(comb.Filter(func(b byte) bool {
				return b >= 0x20 && b < utf8.RuneSelf && b != '"' && b != '\\'
			})),
			escape,
			utf8Char,
		)
		str := comb.DelimitedBy(
			comb.Sliced[byte, []byte](comb.Repeated(char)),
			comb.Just[byte]('"'),
			comb.Just[byte]('"'),
		)

		comma := comb.Padded(comb.Just[byte](','))
		array := comb.Map(
			comb.DelimitedBy(comb.Padded(comb.SeparatedBy(value, comma)), comb.Just[byte]('['), comb.Just[byte](']')),
			func(items []Value) Value { return Value{Kind: KindArray, Array: items} },
		)

		member := comb.Map(
			comb.Then(comb.ThenIgnore(comb.Padded(str), comb.Just[byte](':')), value),
			func(p comb.Pair[[]byte, Value]) Member { return Member{Key: p.First, Value: p.Second} },
		)
		object := comb.Map(
			comb.DelimitedBy(comb.Padded(comb.SeparatedBy(member, comma)), comb.Just[byte]('{'), comb.Just[byte]('}')),
			func(members []Member) Value { return Value{Kind: KindObject, Object: members} },
		)

		return comb.Padded(comb.Choice(
			comb.To(comb.Just([]byte("null")...), Value{Kind: KindNull}),
			comb.To(comb.Just([]byte("true")...), Value{Kind: KindBool, Bool: true}),
			comb.To(comb.Just([]byte("false")...), Value{Kind: KindBool}),
			number,
			comb.Map(str, func(s []byte) Value { return Value{Kind: KindString, Str: s} }),
			array,
			object,
		))
	})
}

// utf8Char matches one multi-byte UTF-8 encoded character. Invalid
// encodings fail at their first byte.
var utf8Char comb.Parser[byte, struct{}] = comb.ParserFunc[byte, struct{}](func(c *comb.Cursor[byte], m comb.Mode) (struct{}, *comb.Located[byte]) {
	start := c.Save()
	var buf [utf8.UTFMax]byte
	n := 0
	for n < len(buf) {
		_, tok := c.Next()
		if !tok.Ok {
			break
		}
		buf[n] = tok.Value
		n++
		if utf8.FullRune(buf[:n]) {
			break
		}
	}
	if _, size := utf8.DecodeRune(buf[:n]); n > 0 && buf[0] >= utf8.RuneSelf && size > 1 && size == n {
		return struct{}{}, nil
	}
	c.Rewind(start)
	found := comb.None[byte]()
	if n > 0 {
		found = comb.Some(buf[0])
	}
	at := start.Offset()
	return struct{}{}, comb.At(at, c.ExpectedFound(nil, found, comb.Span{Start: at, End: at + 1}))
})

var document = sync.OnceValue(func() comb.Parser[byte, Value] {
	return comb.ThenIgnore(Parser(), comb.End[byte]())
})

// Parse parses data as a complete JSON document. The returned strings alias
// data.
func Parse(data []byte) (Value, error) {
	return comb.Parse(document(), comb.Bytes(data))
}

// Check reports whether data is a complete JSON document without building
// a Value.
func Check(data []byte) error {
	return comb.Check(document(), comb.Bytes(data))
}
