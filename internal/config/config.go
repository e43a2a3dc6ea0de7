// Package config holds the settings of the command line tool. Settings come
// from defaults, then an optional YAML file, then command line flags.
//
// Example file:
//
//	transform: true
//	strict: false
//	workers: 4
//	log_level: info
//	output_dir: out
//	suffix: .cpo
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-billy/v5"
	"gopkg.in/yaml.v3"

	"github.com/sohaibafifi/xcsp2cpo/internal/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete tool configuration.
type Config struct {
	Transform bool   `yaml:"transform"`
	Strict    bool   `yaml:"strict"`
	Workers   int    `yaml:"workers"`
	LogLevel  string `yaml:"log_level"`
	OutputDir string `yaml:"output_dir"`
	Suffix    string `yaml:"suffix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Transform: true,
		Workers:   0,
		LogLevel:  "warn",
		OutputDir: ".",
		Suffix:    ".cpo",
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected. The
// result is validated.
func Load(fsys billy.Basic, name string) (Config, error) {
	cfg := Default()
	f, err := fsys.Open(name)
	if err != nil {
		return cfg, fmt.Errorf("config: open %q: %w", name, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode %q: %w", name, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks field ranges.
func (c Config) Validate() error {
	var problems []string
	if c.Workers < 0 {
		problems = append(problems, fmt.Sprintf("workers must not be negative, got %d", c.Workers))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}
	if c.Suffix == "" {
		problems = append(problems, "suffix must not be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
