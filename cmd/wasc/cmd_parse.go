package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/wasc/format"
	"github.com/dhamidi/wasc/script/parser"
	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string
	var expression bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a script file and dump its syntax tree",
		Long: "Parse a script file and dump its syntax tree. Diagnostics go to stderr;\n" +
			"the command fails when the file has syntax errors.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := a.colorMode()
			if err != nil {
				return err
			}

			var node parser.Node
			var src *parser.Source
			if expression {
				node, src = parser.ParseExpression(args[0], a.project.ParserOptions()...)
			} else {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read source file: %w", err)
				}
				node, src = parser.Parse(string(data), a.project.ParserOptions(parser.WithURL(args[0]))...)
			}

			enc, err := format.NewTreeEncoder(outputFormat, cmd.OutOrStdout(), src)
			if err != nil {
				return err
			}
			if node == nil {
				if err := reportDiagnostics(cmd, mode, src.AllDiagnostics()); err != nil {
					return err
				}
				return fmt.Errorf("%q is not an expression", args[0])
			}
			if err := enc.Encode(node); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}

			return reportDiagnostics(cmd, mode, src.AllDiagnostics())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, yaml, sexpr)")
	cmd.Flags().BoolVarP(&expression, "expression", "e", false, "parse the argument as an expression instead of a file name")

	return cmd
}

// reportDiagnostics prints diagnostics to stderr and fails if any of them
// is an error.
func reportDiagnostics(cmd *cobra.Command, mode format.ColorMode, diagnostics []*parser.Diagnostic) error {
	dw := format.NewDiagnosticWriter(cmd.ErrOrStderr(), mode)
	if err := dw.WriteAll(diagnostics); err != nil {
		return err
	}
	if errs, _ := dw.Counts(); errs > 0 {
		if err := dw.Summary(); err != nil {
			return err
		}
		return fmt.Errorf("%d syntax errors", errs)
	}
	return nil
}
