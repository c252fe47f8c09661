package main

import (
	"strings"
	"testing"
)

func TestReplEval(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		check    bool
		complete bool
		output   string
	}{
		{name: "value", src: "[1]\n", complete: true, output: "array (1 item)\n  1\n"},
		{name: "check mode", src: "[1]\n", check: true, complete: true, output: "ok\n"},
		{name: "unfinished", src: "[1,\n", complete: false, output: ""},
		{name: "error", src: "[1 2]\n", complete: true, output: "<input>:1:4: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &replSession{name: "json", parse: parseJSON, check: tt.check}
			var sb strings.Builder
			if got := s.eval(&sb, tt.src); got != tt.complete {
				t.Errorf("got complete %v, want %v", got, tt.complete)
			}
			if !strings.HasPrefix(sb.String(), tt.output) {
				t.Errorf("got output %q, want prefix %q", sb.String(), tt.output)
			}
			if tt.output == "" && sb.Len() != 0 {
				t.Errorf("got output %q, want none", sb.String())
			}
		})
	}
}

func TestReplCommands(t *testing.T) {
	s := &replSession{name: "json", parse: parseJSON}
	var sb strings.Builder

	if s.command(&sb, ":check") {
		t.Fatal(":check ended the session")
	}
	if !s.check || sb.String() != "check mode on\n" {
		t.Errorf("got check %v output %q", s.check, sb.String())
	}
	if !s.command(&sb, ":quit") {
		t.Error(":quit did not end the session")
	}

	sb.Reset()
	s.command(&sb, ":nope")
	if !strings.HasPrefix(sb.String(), "unknown command :nope") {
		t.Errorf("got output %q", sb.String())
	}
}

func TestReplPrompt(t *testing.T) {
	s := &replSession{name: "json"}
	if got, want := s.prompt(false), "json> "; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := s.prompt(true), "....> "; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
