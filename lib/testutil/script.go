// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteScript writes body as an executable shell script named name in
// directory and returns its absolute path. The "#!/bin/sh" line and
// "set -e" are prepended.
func WriteScript(t testing.TB, directory, name, body string) string {
	t.Helper()

	path := filepath.Join(directory, name)
	content := "#!/bin/sh\nset -e\n" + strings.TrimLeft(body, "\n")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("writing script %s: %v", path, err)
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("resolving script %s: %v", path, err)
	}
	return absolute
}

// ReadLines returns the non-empty lines of the file at path, or nil if
// the file does not exist.
func ReadLines(t testing.TB, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
