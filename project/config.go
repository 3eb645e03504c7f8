package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dhamidi/wasc/script/parser"
)

// ConfigFile is the name of the project configuration file.
const ConfigFile = "wasc.toml"

type Config struct {
	Sources SourcesConfig `toml:"sources"`
	Parser  ParserConfig  `toml:"parser"`
	Log     LogConfig     `toml:"log"`
}

type SourcesConfig struct {
	// Roots are directories relative to the project root.
	Roots      []string `toml:"roots"`
	Extensions []string `toml:"extensions"`
	// Exclude holds gitignore style patterns.
	Exclude []string `toml:"exclude"`
}

type ParserConfig struct {
	ValidateRegExp  bool `toml:"validate_regexp"`
	MaxIncludeDepth int  `toml:"max_include_depth"`
}

type LogConfig struct {
	Verbosity int `toml:"verbosity"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig decodes dir/wasc.toml. Keys the file leaves out keep their
// default values.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Debugf("no %s in %s, using defaults", ConfigFile, dir)
		return DefaultConfig(), nil
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Warningf("unknown key %s in %s", key.String(), path)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Sources.Roots) == 0 {
		c.Sources.Roots = []string{"."}
	}
	if len(c.Sources.Extensions) == 0 {
		c.Sources.Extensions = []string{".as"}
	}
	if c.Parser.MaxIncludeDepth == 0 {
		c.Parser.MaxIncludeDepth = parser.DefaultMaxIncludeDepth
	}
}

func (c *Config) validate() error {
	if c.Parser.MaxIncludeDepth < 0 {
		return fmt.Errorf("parser.max_include_depth must not be negative, got %d", c.Parser.MaxIncludeDepth)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	for _, root := range c.Sources.Roots {
		if filepath.IsAbs(root) {
			return fmt.Errorf("sources.roots must be relative, got %s", root)
		}
	}
	return nil
}
