package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/dhamidi/comb/diag"
	"github.com/dhamidi/comb/ebnfparse"
	"github.com/dhamidi/comb/format"
	"github.com/dhamidi/comb/json"
)

const historyFile = ".comb_history"

const replHelp = `Enter input to parse it. Input that stops at end of line continues on
the next line.

  :check   toggle check mode (report success or failure only)
  :help    show this help
  :quit    leave the REPL
`

func newReplCmd() *cobra.Command {
	var grammarFile, startProduction string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse JSON or input for a grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &replSession{name: "json", parse: parseJSON}
			if grammarFile != "" {
				compiled, err := loadCompiled(cmd, grammarFile, startProduction)
				if err != nil {
					return err
				}
				s = &replSession{name: compiled.Start(), parse: grammarParser(compiled)}
			}
			return runRepl(s, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF grammar to parse with instead of JSON")
	cmd.Flags().StringVar(&startProduction, "start", "", "start production of the grammar")
	cmd.MarkFlagsRequiredTogether("grammar", "start")

	return cmd
}

// parseFunc parses src and returns the text to print. In check mode no
// tree or value is built.
type parseFunc func(src string, check bool) (string, error)

func parseJSON(src string, check bool) (string, error) {
	if check {
		return "ok\n", json.Check([]byte(src))
	}
	v, err := json.Parse([]byte(src))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	err = format.NewValueEncoder(&sb).Encode(v)
	return sb.String(), err
}

func grammarParser(compiled *ebnfparse.Compiled) parseFunc {
	return func(src string, check bool) (string, error) {
		if check {
			return "ok\n", compiled.Check(src)
		}
		node, err := compiled.Parse(src)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		err = format.NewTreeEncoder(&sb).Encode(node)
		return sb.String(), err
	}
}

type replSession struct {
	name  string
	parse parseFunc
	check bool
}

func (s *replSession) prompt(continued bool) string {
	if continued {
		return strings.Repeat(".", len(s.name)) + "> "
	}
	return s.name + "> "
}

// command runs a ':' command and reports whether the session should end.
func (s *replSession) command(w io.Writer, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprint(w, replHelp)
	case ":check":
		s.check = !s.check
		fmt.Fprintf(w, "check mode %s\n", onOff(s.check))
	default:
		fmt.Fprintf(w, "unknown command %s. Type :help for help.\n", fields[0])
	}
	return false
}

// eval parses src and writes the result. It reports false when src ends
// before the parser could finish, so more input should be read.
func (s *replSession) eval(w io.Writer, src string) bool {
	out, err := s.parse(src, s.check)
	if err == nil {
		fmt.Fprint(w, out)
		return true
	}
	if d, ok := diag.FromError("", src, err); ok && d.Pos.Offset >= len(src) {
		return false
	}
	if rerr := diag.Render(w, "<input>", src, err, 0); rerr != nil {
		log.Errorf("render: %s", rerr)
	}
	return true
}

func runRepl(s *replSession, w io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	var buf strings.Builder
	for {
		input, err := line.Prompt(s.prompt(buf.Len() > 0))
		if errors.Is(err, liner.ErrPromptAborted) {
			buf.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(w)
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if buf.Len() == 0 {
			trimmed := strings.TrimSpace(input)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ":") {
				if s.command(w, trimmed) {
					break
				}
				continue
			}
		}

		buf.WriteString(input)
		buf.WriteByte('\n')
		if !s.eval(w, buf.String()) {
			continue
		}
		line.AppendHistory(strings.ReplaceAll(strings.TrimSuffix(buf.String(), "\n"), "\n", " "))
		buf.Reset()
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
