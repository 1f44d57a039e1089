// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/bigbwt/lib/stage"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.WindowSize != 10 {
		t.Errorf("expected window_size=10, got %d", cfg.WindowSize)
	}
	if cfg.Modulus != 100 {
		t.Errorf("expected modulus=100, got %d", cfg.Modulus)
	}
	if cfg.KeepTemporaries || cfg.Check {
		t.Error("expected keep_temporaries and check to default to false")
	}
	if diff := cmp.Diff(stage.DefaultExecutables(), cfg.Executables); diff != "" {
		t.Errorf("default executables mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_WithoutBigbwtConfig(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.WindowSize != 10 {
		t.Errorf("expected defaults when %s is unset, got window_size=%d", EnvironmentVariable, cfg.WindowSize)
	}
}

func TestLoad_WithBigbwtConfig(t *testing.T) {
	path := writeConfig(t, "bigbwt.yaml", "window_size: 12\nmodulus: 50\n")
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.WindowSize != 12 || cfg.Modulus != 50 {
		t.Errorf("expected window_size=12 modulus=50, got %d %d", cfg.WindowSize, cfg.Modulus)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "bigbwt.yaml", `
executables:
  parse: /opt/bigbwt/newscan.x
  reference_64: simplebwt64
executable_dir: /opt/bigbwt
keep_temporaries: true
check: true
compress_log: zstd
result_path: run.jsonl
color: never
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Executables.Parse != "/opt/bigbwt/newscan.x" {
		t.Errorf("parse = %q", cfg.Executables.Parse)
	}
	if cfg.Executables.Reference64 != "simplebwt64" {
		t.Errorf("reference_64 = %q", cfg.Executables.Reference64)
	}
	// Executables the file does not mention keep their defaults.
	if cfg.Executables.FinalBWT != "./pfbwt.x" {
		t.Errorf("final_bwt = %q, want default", cfg.Executables.FinalBWT)
	}
	if cfg.WindowSize != 10 {
		t.Errorf("window_size = %d, want default 10", cfg.WindowSize)
	}
	if !cfg.KeepTemporaries || !cfg.Check {
		t.Error("expected keep_temporaries and check from file")
	}
	if cfg.CompressLog != "zstd" || cfg.ResultPath != "run.jsonl" || cfg.Color != "never" {
		t.Errorf("output options = %q %q %q", cfg.CompressLog, cfg.ResultPath, cfg.Color)
	}

	resolved := cfg.ResolvedExecutables()
	if resolved.FinalBWT != "/opt/bigbwt/pfbwt.x" {
		t.Errorf("resolved final_bwt = %q", resolved.FinalBWT)
	}
	if resolved.Reference64 != "simplebwt64" {
		t.Errorf("bare name should stay for PATH lookup, got %q", resolved.Reference64)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "bigbwt.jsonc", `{
  // Larger window for repetitive genomes.
  "window_size": 20,
  "modulus": 200,
  "executables": {
    "final_bwt": "/usr/local/bin/pfbwt.x",
  },
}`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.WindowSize != 20 || cfg.Modulus != 200 {
		t.Errorf("expected window_size=20 modulus=200, got %d %d", cfg.WindowSize, cfg.Modulus)
	}
	if cfg.Executables.FinalBWT != "/usr/local/bin/pfbwt.x" {
		t.Errorf("final_bwt = %q", cfg.Executables.FinalBWT)
	}
	if cfg.Executables.Parse != "./newscan.x" {
		t.Errorf("parse = %q, want default", cfg.Executables.Parse)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "bigbwt.yaml", "window_size: [1, 2\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadFile_ExpandsVariables(t *testing.T) {
	t.Setenv("BIGBWT_TEST_TOOLS", "/srv/tools")

	path := writeConfig(t, "bigbwt.yaml", `
executable_dir: ${BIGBWT_TEST_TOOLS}
result_path: ${BIGBWT_TEST_UNSET:-/tmp/run.cbor}
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.ExecutableDir != "/srv/tools" {
		t.Errorf("executable_dir = %q", cfg.ExecutableDir)
	}
	if cfg.ResultPath != "/tmp/run.cbor" {
		t.Errorf("result_path = %q", cfg.ResultPath)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/bigbwt",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/bigbwt",
		},
		{
			input:    "${BIGBWT_TEST_MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.WindowSize = 0
	cfg.Modulus = -1
	cfg.CompressLog = "gzip"
	cfg.Color = "sometimes"
	cfg.Executables.FinalBWT = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"window_size", "modulus", "compress_log", "color", "executables.final_bwt"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error should mention %s: %v", want, err)
		}
	}
}
