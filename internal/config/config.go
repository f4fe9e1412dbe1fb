// Package config loads settings for the sexp-pprint command from a YAML file.
//
// Example file:
//
//	indent: "    "
//	compact: false
//	max_depth: 500
//	max_input_bytes: 1048576
//	encoding: ISO-8859-1
//	history_file: ~/.sexp_history
//
// Missing keys keep their defaults. Unknown keys are an error.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shapestone/shape-sexp/pkg/sexp"
)

// DefaultMaxInputBytes caps how much input a single parse reads.
const DefaultMaxInputBytes = 64 << 20

// Config holds pretty-printer and reader settings.
type Config struct {
	Indent        string `yaml:"indent"`
	Compact       bool   `yaml:"compact"`
	MaxDepth      int    `yaml:"max_depth"`
	MaxInputBytes int64  `yaml:"max_input_bytes"`
	Encoding      string `yaml:"encoding"`
	HistoryFile   string `yaml:"history_file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Indent:        "  ",
		MaxDepth:      sexp.DefaultMaxDepth,
		MaxInputBytes: DefaultMaxInputBytes,
		Encoding:      "UTF-8",
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML settings over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that settings are usable.
func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.MaxInputBytes <= 0 {
		return fmt.Errorf("max_input_bytes must be positive, got %d", c.MaxInputBytes)
	}
	if strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("indent must hold only spaces and tabs, got %q", c.Indent)
	}
	return nil
}

// Printer returns the printer these settings describe.
func (c Config) Printer() sexp.Printer {
	return sexp.Printer{Indent: c.Indent, Compact: c.Compact}
}

// ParseOptions returns the parse options these settings describe.
func (c Config) ParseOptions() []sexp.Option {
	return []sexp.Option{sexp.WithMaxDepth(c.MaxDepth)}
}

// HistoryPath returns HistoryFile with a leading "~/" expanded.
func (c Config) HistoryPath() string {
	if rest, ok := strings.CutPrefix(c.HistoryFile, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return c.HistoryFile
}
