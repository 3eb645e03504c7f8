package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/dhamidi/wasc/format"
	"github.com/dhamidi/wasc/script/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type checkResult struct {
	path   string
	source *parser.Source
}

func newCheckCmd(a *app) *cobra.Command {
	var jobs int
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report syntax diagnostics for script files",
		Long: "Parse every given file, or every source file of the project when none is\n" +
			"given, and report their diagnostics. Files are parsed in parallel.",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := a.colorMode()
			if err != nil {
				return err
			}

			files := args
			if len(files) == 0 {
				files, err = a.project.SourceFiles()
				if err != nil {
					return fmt.Errorf("discover source files: %w", err)
				}
			}

			results, err := checkFiles(cmd.Context(), files, jobs, a.project.ParserOptions())
			if err != nil {
				return err
			}

			dw := format.NewDiagnosticWriter(cmd.ErrOrStderr(), mode)
			for _, r := range results {
				if err := dw.WriteAll(r.source.AllDiagnostics()); err != nil {
					return err
				}
			}
			if err := dw.Summary(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d files\n", len(results))

			errs, warnings := dw.Counts()
			if errs > 0 || (strict && warnings > 0) {
				return fmt.Errorf("check failed: %d errors, %d warnings", errs, warnings)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of files parsed concurrently")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings too")

	return cmd
}

// checkFiles parses each file with its own parser. Results keep the order
// of files.
func checkFiles(ctx context.Context, files []string, jobs int, opts []parser.Option) ([]checkResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs < 1 {
		jobs = 1
	}

	results := make([]checkResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}
			fileOpts := append(append([]parser.Option(nil), opts...), parser.WithURL(path))
			_, src := parser.Parse(string(data), fileOpts...)
			results[i] = checkResult{path: path, source: src}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
