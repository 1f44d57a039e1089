// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resultlog

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/bigbwt/lib/codec"
	"github.com/bureau-foundation/bigbwt/lib/verify"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func writeRun(t *testing.T, log *Log) {
	t.Helper()
	log.WriteStart(StartEntry{Input: "in", InputSize: 1000, WindowSize: 10, Modulus: 100, LogPath: "in.log"}, epoch)
	log.WriteStage("parse", "./newscan.x 10 100 in", "", 1500*time.Millisecond, 1500*time.Millisecond)
	log.WriteStage("parse-bwt", "./bwtparse in", "standard", 500*time.Millisecond, 2*time.Second)
	log.WriteVerify(verify.Result{Match: true, Offset: -1})
	log.WriteComplete(3 * time.Second)
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestJSONLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.jsonl")
	log, err := Create(path, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	writeRun(t, log)

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("line %q is not JSON: %v", scanner.Text(), err)
		}
		entries = append(entries, entry)
	}

	wantTypes := []string{"start", "stage", "stage", "verify", "complete"}
	if len(entries) != len(wantTypes) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantTypes))
	}
	for index, want := range wantTypes {
		if entries[index]["type"] != want {
			t.Errorf("entry %d type = %v, want %s", index, entries[index]["type"], want)
		}
	}
	if entries[0]["timestamp"] != "2026-03-01T12:00:00Z" {
		t.Errorf("timestamp = %v", entries[0]["timestamp"])
	}
	if entries[2]["variant"] != "standard" || entries[2]["total_ms"] != float64(2000) {
		t.Errorf("stage entry = %v", entries[2])
	}
	if entries[3]["outcome"] != "match" {
		t.Errorf("verify outcome = %v", entries[3]["outcome"])
	}
	if entries[4]["duration_ms"] != float64(3000) {
		t.Errorf("complete duration = %v", entries[4]["duration_ms"])
	}
}

func TestCBORSequence(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.cbor")
	log, err := Create(path, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	writeRun(t, log)

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()

	decoder := codec.NewDecoder(file)
	var types []string
	for {
		var entry map[string]any
		err := decoder.Decode(&entry)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		types = append(types, entry["type"].(string))
	}
	if len(types) != 5 || types[0] != "start" || types[4] != "complete" {
		t.Errorf("types = %v", types)
	}
}

func TestFailedEntry(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.jsonl")
	log, err := Create(path, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	log.WriteFailed("parse", "./newscan.x 10 100 in", "exit status 1", time.Second)
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var entry FailedEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if entry.Status != "failed" || entry.FailedStage != "parse" || entry.Command != "./newscan.x 10 100 in" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestNilLogIsNoOp(t *testing.T) {
	t.Parallel()

	var log *Log
	log.WriteStart(StartEntry{}, epoch)
	log.WriteStage("parse", "", "", 0, 0)
	log.WriteVerify(verify.Result{})
	log.WriteComplete(0)
	log.WriteFailed("parse", "", "", 0)
	if err := log.Close(); err != nil {
		t.Errorf("Close on nil log: %v", err)
	}
	if log.Path() != "" {
		t.Errorf("Path on nil log = %q", log.Path())
	}
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	if FormatForPath("run.cbor") != CBORSequence {
		t.Error("run.cbor should be CBOR")
	}
	for _, path := range []string{"run.jsonl", "run.json", "run"} {
		if FormatForPath(path) != JSONLines {
			t.Errorf("%s should be JSON lines", path)
		}
	}
}

func TestCreateFailure(t *testing.T) {
	t.Parallel()

	if _, err := Create(filepath.Join(t.TempDir(), "missing", "run.jsonl"), nil); err == nil {
		t.Fatal("Create in a missing directory should fail")
	}
}
