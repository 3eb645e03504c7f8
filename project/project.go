package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/wasc/script/parser"
)

var log = commonlog.GetLogger("wasc.project")

// Project is a directory of script sources, optionally described by a
// wasc.toml file at its root.
type Project struct {
	RootDir string
	Config  *Config
}

// Load reads the project rooted at the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads the project configuration found in rootDir. A missing
// wasc.toml is not an error; the defaults are used instead.
func LoadFrom(rootDir string) (*Project, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("read project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", rootDir)
	}

	cfg, err := LoadConfig(rootDir)
	if err != nil {
		return nil, err
	}

	return &Project{
		RootDir: filepath.Clean(rootDir),
		Config:  cfg,
	}, nil
}

// SourceFiles lists the project's script files in lexical order.
func (p *Project) SourceFiles() ([]string, error) {
	return Discover(p.RootDir, p.Config.Sources)
}

// ParserOptions returns the parser options configured for the project,
// followed by extra.
func (p *Project) ParserOptions(extra ...parser.Option) []parser.Option {
	opts := []parser.Option{
		parser.WithRegExpValidation(p.Config.Parser.ValidateRegExp),
		parser.WithMaxIncludeDepth(p.Config.Parser.MaxIncludeDepth),
	}
	return append(opts, extra...)
}
