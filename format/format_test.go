package format

import (
	stdjson "encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/comb/ebnfparse"
	"github.com/dhamidi/comb/json"
)

func parseSum(t *testing.T, src string) *ebnfparse.Node {
	t.Helper()
	g, err := ebnfparse.ParseGrammar("sum.ebnf", strings.NewReader(`
Sum    = number { "+" number } .
number = "0" … "9" { "0" … "9" } .
`))
	if err != nil {
		t.Fatal(err)
	}
	c, err := ebnfparse.Compile(g, "Sum")
	if err != nil {
		t.Fatal(err)
	}
	n, err := c.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestTreeEncoder(t *testing.T) {
	var sb strings.Builder
	if err := NewTreeEncoder(&sb).Encode(parseSum(t, "1 + 23")); err != nil {
		t.Fatal(err)
	}
	want := "Sum\t0..6\n" +
		"  number\t0..1\t\"1\"\n" +
		"  \"+\"\t2..3\t\"+\"\n" +
		"  number\t4..6\t\"23\"\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeJSONEncoder(t *testing.T) {
	src := "1 +\n23"
	var sb strings.Builder
	if err := NewNodeJSONEncoder(&sb, src).Encode(parseSum(t, src)); err != nil {
		t.Fatal(err)
	}

	var got jsonNode
	if err := stdjson.Unmarshal([]byte(sb.String()), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, sb.String())
	}
	if got.Name != "Sum" || len(got.Children) != 3 {
		t.Fatalf("got %s with %d children", got.Name, len(got.Children))
	}
	last := got.Children[2]
	want := &jsonNode{
		Name: "number",
		Text: "23",
		Span: jsonSpan{
			Start: jsonPosition{Offset: 4, Line: 2, Column: 1},
			End:   jsonPosition{Offset: 6, Line: 2, Column: 3},
		},
	}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Errorf("node mismatch (-want +got):\n%s", diff)
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range []string{"", "tree", "json"} {
		if _, ok := NewEncoder(name, &strings.Builder{}, ""); !ok {
			t.Errorf("NewEncoder(%q) not found", name)
		}
	}
	if _, ok := NewEncoder("xml", &strings.Builder{}, ""); ok {
		t.Error("NewEncoder(xml) found")
	}
}

func TestValueEncoder(t *testing.T) {
	v, err := json.Parse([]byte(`{"a": [1, "x", null], "b": {"c": true}, "d": {}}`))
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := NewValueEncoder(&sb).Encode(v); err != nil {
		t.Fatal(err)
	}
	want := `object (3 members)
  "a": array (3 items)
    1
    "x"
    null
  "b": object (1 member)
    "c": true
  "d": object (0 members)
`
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
