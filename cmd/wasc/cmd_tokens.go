package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/wasc/format"
	"github.com/dhamidi/wasc/script/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a script file",
		Long: "Print the token stream of a script file, one token per line. The file is\n" +
			"scanned in normal mode only; XML literals and regular expressions need the\n" +
			"parser to be recognized.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := a.colorMode()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			src := parser.NewSource(string(data), args[0])
			tokens := parser.Tokens(src)
			if err := format.NewTokenWriter(cmd.OutOrStdout(), src).WriteAll(tokens); err != nil {
				return err
			}
			return reportDiagnostics(cmd, mode, src.Diagnostics)
		},
	}
}
