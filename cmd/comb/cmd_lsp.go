package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/comb/ebnfparse"
	"github.com/dhamidi/comb/lsp"
)

func newLSPCmd() *cobra.Command {
	var grammarFile, startProduction string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run a language server that reports parse errors as diagnostics",
		Long: `Run a language server over stdio.

JSON documents are always checked. With --grammar, every other document is
checked against the grammar starting at --start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var compiled *ebnfparse.Compiled
			if grammarFile != "" {
				var err error
				if compiled, err = loadCompiled(cmd, grammarFile, startProduction); err != nil {
					return err
				}
			}
			return lsp.NewServer(version, compiled).RunStdio()
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF grammar for non-JSON documents")
	cmd.Flags().StringVar(&startProduction, "start", "", "start production of the grammar")
	cmd.MarkFlagsRequiredTogether("grammar", "start")

	return cmd
}
