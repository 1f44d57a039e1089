// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logarchive

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	t.Parallel()

	content := []byte(strings.Repeat("window 10 modulus 100: parsing...\n", 500))
	for _, format := range []Format{Zstd, LZ4} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "input.log")
			if err := os.WriteFile(path, content, 0o644); err != nil {
				t.Fatal(err)
			}

			compressed, err := Compress(path, format)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if compressed != path+format.Extension() {
				t.Errorf("compressed path = %q", compressed)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Errorf("plain log still present (stat err = %v)", err)
			}

			reader, err := Open(compressed)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer reader.Close()
			got, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if !bytes.Equal(got, content) {
				t.Errorf("decompressed %d bytes, want %d", len(got), len(content))
			}
		})
	}
}

func TestCompressNone(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "input.log")
	if err := os.WriteFile(path, []byte("log\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Compress(path, None)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("plain log removed: %v", err)
	}
}

func TestCompressMissingLog(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()
	path := filepath.Join(directory, "missing.log")
	if _, err := Compress(path, Zstd); err == nil {
		t.Fatal("Compress of a missing log should fail")
	}
	if _, err := os.Stat(path + ".zst"); !os.IsNotExist(err) {
		t.Errorf("partial output left behind (stat err = %v)", err)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"", None, false},
		{"none", None, false},
		{"zstd", Zstd, false},
		{"lz4", LZ4, false},
		{"gzip", "", true},
	}
	for _, test := range tests {
		got, err := ParseFormat(test.name)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", test.name, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", test.name, got, test.want)
		}
	}
}
