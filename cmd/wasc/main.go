package main

import (
	"github.com/dhamidi/wasc/format"
	"github.com/dhamidi/wasc/project"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"github.com/tliron/kutil/util"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// quietVerbosity only lets errors through; each -v raises the level by one.
const quietVerbosity = -2

type app struct {
	root      string
	verbosity int
	logFile   string
	color     string
	project   *project.Project
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		util.Exit(1)
	}
	util.Exit(0)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "wasc",
		Short:        "Parse and check scripts for the WebAssembly compiler",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.root, "root", "C", ".", "project root containing wasc.toml")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&a.logFile, "log", "", "write logs to this file instead of stderr")
	flags.StringVar(&a.color, "color", string(format.ColorAuto), "color diagnostics: auto, always or never")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}

func (a *app) load() error {
	proj, err := project.LoadFrom(a.root)
	if err != nil {
		return err
	}
	a.project = proj
	commonlog.Initialize(quietVerbosity+proj.Config.Log.Verbosity+a.verbosity, a.logFile)
	return nil
}

func (a *app) colorMode() (format.ColorMode, error) {
	return format.ParseColorMode(a.color)
}
