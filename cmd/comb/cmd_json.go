package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/comb/format"
	"github.com/dhamidi/comb/json"
)

func newJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "json",
		Short:         "JSON document tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newJSONParseCmd())
	cmd.AddCommand(newJSONCheckCmd())

	return cmd
}

func newJSONParseCmd() *cobra.Command {
	var context int

	cmd := &cobra.Command{
		Use:           "parse <file>",
		Short:         "Parse a JSON document and print a summary of its values",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			v, err := json.Parse(data)
			if err != nil {
				return reportParseError(cmd.ErrOrStderr(), filename, string(data), err, context)
			}
			log.Debugf("parsed %s: %s", filename, v.Kind)

			return format.NewValueEncoder(cmd.OutOrStdout()).Encode(v)
		},
	}

	cmd.Flags().IntVar(&context, "context", 2, "lines of source shown around an error")

	return cmd
}

func newJSONCheckCmd() *cobra.Command {
	var context int

	cmd := &cobra.Command{
		Use:           "check <file>...",
		Short:         "Validate JSON documents without building values",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed error
			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				if err := json.Check(data); err != nil {
					failed = reportParseError(cmd.ErrOrStderr(), filename, string(data), err, context)
					continue
				}
				log.Infof("%s: ok", filename)
			}
			return failed
		},
	}

	cmd.Flags().IntVar(&context, "context", 2, "lines of source shown around an error")

	return cmd
}
