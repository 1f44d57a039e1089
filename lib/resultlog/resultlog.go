// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package resultlog writes a structured record of a run as it
// progresses.
//
// Each entry is an independent item, which makes the record:
//
//   - Crash-safe: a run killed mid-stage preserves every completed
//     stage. A single document would be truncated and unparseable.
//   - Streamable: a supervisor can tail the file for stage-by-stage
//     progress instead of waiting for the run to finish.
//
// Entries are JSON lines, or a CBOR sequence (RFC 8742) when the path
// ends in ".cbor". A run writes one "start" entry, one "stage" entry per
// completed stage, at most one "verify" entry, and ends with exactly one
// "complete" or "failed" entry.
//
// All methods are nil-safe no-ops, so the driver can record
// unconditionally whether or not a result path was configured.
package resultlog

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/bureau-foundation/bigbwt/lib/codec"
	"github.com/bureau-foundation/bigbwt/lib/verify"
)

// Format is the encoding of a result log.
type Format string

const (
	// JSONLines writes one JSON object per line.
	JSONLines Format = "jsonl"

	// CBORSequence writes concatenated deterministic CBOR items.
	CBORSequence Format = "cbor"
)

// FormatForPath returns the format implied by a path's extension.
func FormatForPath(path string) Format {
	if strings.HasSuffix(path, ".cbor") {
		return CBORSequence
	}
	return JSONLines
}

type encoder interface {
	Encode(v any) error
}

// Log is an open result log.
type Log struct {
	logger  *slog.Logger
	file    *os.File
	format  Format
	encoder encoder
}

// Create creates (truncating) a result log at path. The format follows
// the path's extension.
func Create(path string, logger *slog.Logger) (*Log, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating result log %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	format := FormatForPath(path)
	var entryEncoder encoder
	if format == CBORSequence {
		entryEncoder = codec.NewEncoder(file)
	} else {
		entryEncoder = json.NewEncoder(file)
	}
	return &Log{logger: logger, file: file, format: format, encoder: entryEncoder}, nil
}

// Path returns the file the log writes to, or "" for a nil log.
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.file.Name()
}

// Close closes the result log file.
func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	return l.file.Close()
}

// StartEntry is the first entry of every run.
type StartEntry struct {
	Type            string `json:"type" cbor:"type"`
	Input           string `json:"input" cbor:"input"`
	InputSize       int64  `json:"input_size" cbor:"input_size"`
	WindowSize      int    `json:"window_size" cbor:"window_size"`
	Modulus         int    `json:"modulus" cbor:"modulus"`
	KeepTemporaries bool   `json:"keep_temporaries" cbor:"keep_temporaries"`
	Check           bool   `json:"check" cbor:"check"`
	LogPath         string `json:"log_path" cbor:"log_path"`
	Timestamp       string `json:"timestamp" cbor:"timestamp"`
}

// StageEntry records one completed stage.
type StageEntry struct {
	Type       string `json:"type" cbor:"type"`
	Stage      string `json:"stage" cbor:"stage"`
	Command    string `json:"command,omitempty" cbor:"command,omitempty"`
	Variant    string `json:"variant,omitempty" cbor:"variant,omitempty"`
	DurationMS int64  `json:"duration_ms" cbor:"duration_ms"`
	TotalMS    int64  `json:"total_ms" cbor:"total_ms"`
}

// VerifyEntry records the verification outcome.
type VerifyEntry struct {
	Type    string        `json:"type" cbor:"type"`
	Outcome string        `json:"outcome" cbor:"outcome"`
	Result  verify.Result `json:"result" cbor:"result"`
}

// CompleteEntry is the last entry of a run that reached Done.
type CompleteEntry struct {
	Type       string `json:"type" cbor:"type"`
	Status     string `json:"status" cbor:"status"`
	DurationMS int64  `json:"duration_ms" cbor:"duration_ms"`
}

// FailedEntry is the last entry of a run that failed.
type FailedEntry struct {
	Type        string `json:"type" cbor:"type"`
	Status      string `json:"status" cbor:"status"`
	FailedStage string `json:"failed_stage" cbor:"failed_stage"`
	Command     string `json:"command,omitempty" cbor:"command,omitempty"`
	Error       string `json:"error" cbor:"error"`
	DurationMS  int64  `json:"duration_ms" cbor:"duration_ms"`
}

// WriteStart records the start of a run.
func (l *Log) WriteStart(entry StartEntry, now time.Time) {
	if l == nil {
		return
	}
	entry.Type = "start"
	entry.Timestamp = now.UTC().Format(time.RFC3339)
	l.write(entry)
}

// WriteStage records a completed stage.
func (l *Log) WriteStage(stage, command, variant string, duration, total time.Duration) {
	if l == nil {
		return
	}
	l.write(StageEntry{
		Type:       "stage",
		Stage:      stage,
		Command:    command,
		Variant:    variant,
		DurationMS: duration.Milliseconds(),
		TotalMS:    total.Milliseconds(),
	})
}

// WriteVerify records the verification outcome.
func (l *Log) WriteVerify(result verify.Result) {
	if l == nil {
		return
	}
	l.write(VerifyEntry{Type: "verify", Outcome: result.Outcome(), Result: result})
}

// WriteComplete records that the run reached Done.
func (l *Log) WriteComplete(total time.Duration) {
	if l == nil {
		return
	}
	l.write(CompleteEntry{Type: "complete", Status: "ok", DurationMS: total.Milliseconds()})
}

// WriteFailed records that the run failed at stage.
func (l *Log) WriteFailed(stage, command, errorMessage string, total time.Duration) {
	if l == nil {
		return
	}
	l.write(FailedEntry{
		Type:        "failed",
		Status:      "failed",
		FailedStage: stage,
		Command:     command,
		Error:       errorMessage,
		DurationMS:  total.Milliseconds(),
	})
}

func (l *Log) write(entry any) {
	if err := l.encoder.Encode(entry); err != nil {
		l.logger.Warn("failed to write result log entry", "path", l.file.Name(), "error", err)
		return
	}
	// Sync after each entry so partial results survive a crash and are
	// visible to readers tailing the file.
	if err := l.file.Sync(); err != nil {
		l.logger.Warn("failed to sync result log", "path", l.file.Name(), "error", err)
	}
}
