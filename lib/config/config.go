// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bigbwt/lib/console"
	"github.com/bureau-foundation/bigbwt/lib/logarchive"
	"github.com/bureau-foundation/bigbwt/lib/stage"
)

// EnvironmentVariable names the config file when --config is not given.
const EnvironmentVariable = "BIGBWT_CONFIG"

// Config is the complete bigbwt configuration.
type Config struct {
	// Executables overrides the identity of individual stage programs.
	// Unset entries keep their defaults.
	Executables stage.Executables `yaml:"executables" json:"executables"`

	// ExecutableDir re-roots relative executable paths. Bare names are
	// still looked up in PATH.
	ExecutableDir string `yaml:"executable_dir" json:"executable_dir"`

	// WindowSize is the parsing window (-w).
	WindowSize int `yaml:"window_size" json:"window_size"`

	// Modulus is the parsing modulus (-p).
	Modulus int `yaml:"modulus" json:"modulus"`

	// KeepTemporaries skips the cleanup stage (-k).
	KeepTemporaries bool `yaml:"keep_temporaries" json:"keep_temporaries"`

	// Check runs the reference construction and compares (-c).
	Check bool `yaml:"check" json:"check"`

	// CompressLog is "none", "zstd", or "lz4".
	CompressLog string `yaml:"compress_log" json:"compress_log"`

	// ResultPath, when set, receives a structured record of the run.
	ResultPath string `yaml:"result_path" json:"result_path"`

	// Color is "auto", "always", or "never".
	Color string `yaml:"color" json:"color"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Executables: stage.DefaultExecutables(),
		WindowSize:  10,
		Modulus:     100,
		CompressLog: string(logarchive.None),
		Color:       string(console.ColorAuto),
	}
}

// Load loads the file named by BIGBWT_CONFIG. When the variable is
// unset it returns [Default].
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path on top of
// [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	// A file that names only some executables keeps the rest.
	cfg.Executables = cfg.Executables.Merge(stage.DefaultExecutables())

	cfg.expandVariables()

	return cfg, nil
}

// loadFile decodes a single file into c, leaving fields the file does
// not mention untouched.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		return yaml.Unmarshal(data, c)
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.ExecutableDir = expandVars(c.ExecutableDir, vars)
	c.ResultPath = expandVars(c.ResultPath, vars)
	c.Executables.Parse = expandVars(c.Executables.Parse, vars)
	c.Executables.ParseBWT = expandVars(c.Executables.ParseBWT, vars)
	c.Executables.ParseBWT64 = expandVars(c.Executables.ParseBWT64, vars)
	c.Executables.FinalBWT = expandVars(c.Executables.FinalBWT, vars)
	c.Executables.Reference = expandVars(c.Executables.Reference, vars)
	c.Executables.Reference64 = expandVars(c.Executables.Reference64, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// ResolvedExecutables returns the executables with ExecutableDir applied.
func (c *Config) ResolvedExecutables() stage.Executables {
	return c.Executables.Resolve(c.ExecutableDir)
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.WindowSize <= 0 {
		errs = append(errs, fmt.Errorf("window_size must be positive, got %d", c.WindowSize))
	}
	if c.Modulus <= 0 {
		errs = append(errs, fmt.Errorf("modulus must be positive, got %d", c.Modulus))
	}
	if _, err := logarchive.ParseFormat(c.CompressLog); err != nil {
		errs = append(errs, fmt.Errorf("compress_log: %w", err))
	}
	if _, err := console.ParseColorMode(c.Color); err != nil {
		errs = append(errs, fmt.Errorf("color: %w", err))
	}
	if err := c.Executables.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
