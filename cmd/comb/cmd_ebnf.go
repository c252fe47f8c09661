package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/comb/ebnfparse"
	"github.com/dhamidi/comb/format"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfParseCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse, verify and compile an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := ebnfparse.Load(args[0])
			if err != nil {
				return printErrors(cmd.OutOrStdout(), err)
			}
			if startProduction == "" {
				return nil
			}

			compiled, err := ebnfparse.Compile(grammar, startProduction)
			if err != nil {
				return printErrors(cmd.OutOrStdout(), err)
			}
			log.Infof("compiled %d productions reachable from %s", len(compiled.Productions()), compiled.Start())
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfParseCmd() *cobra.Command {
	var (
		startProduction string
		formatName      string
		checkOnly       bool
		context         int
	)

	cmd := &cobra.Command{
		Use:           "parse <grammar> <file>",
		Short:         "Parse a file with a grammar and print its syntax tree",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			compiled, err := loadCompiled(cmd, args[0], startProduction)
			if err != nil {
				return err
			}

			filename := args[1]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			src := string(data)

			if checkOnly {
				if err := compiled.Check(src); err != nil {
					return reportParseError(cmd.ErrOrStderr(), filename, src, err, context)
				}
				return nil
			}

			enc, ok := format.NewEncoder(formatName, cmd.OutOrStdout(), src)
			if !ok {
				return fmt.Errorf("unknown format %q (want tree or json)", formatName)
			}
			node, err := compiled.Parse(src)
			if err != nil {
				return reportParseError(cmd.ErrOrStderr(), filename, src, err, context)
			}
			return enc.Encode(node)
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production (required)")
	cmd.Flags().StringVar(&formatName, "format", "tree", "output format: tree or json")
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether the file parses")
	cmd.Flags().IntVar(&context, "context", 2, "lines of source shown around an error")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

// loadCompiled reads and compiles a grammar, printing grammar errors to the
// command's output.
func loadCompiled(cmd *cobra.Command, filename, start string) (*ebnfparse.Compiled, error) {
	grammar, err := ebnfparse.Load(filename)
	if err != nil {
		return nil, printErrors(cmd.ErrOrStderr(), err)
	}
	compiled, err := ebnfparse.Compile(grammar, start)
	if err != nil {
		return nil, printErrors(cmd.ErrOrStderr(), err)
	}
	return compiled, nil
}
