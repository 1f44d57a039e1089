// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package logarchive compresses a finished stage log in place.
//
// Stage logs from large inputs can be hundreds of megabytes of progress
// chatter. Once a run reaches Done nothing reads the log on the hot
// path, so it is replaced by a compressed copy next to it.
package logarchive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format is a log compression format.
type Format string

const (
	// None leaves the log as plain text.
	None Format = "none"

	// Zstd writes a zstd frame to "<log>.zst".
	Zstd Format = "zstd"

	// LZ4 writes an LZ4 frame to "<log>.lz4".
	LZ4 Format = "lz4"
)

// ParseFormat parses a format name. The empty string means None.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", None:
		return None, nil
	case Zstd:
		return Zstd, nil
	case LZ4:
		return LZ4, nil
	default:
		return "", fmt.Errorf("unknown log compression %q (want none, zstd, or lz4)", name)
	}
}

// Extension returns the file suffix for a format, including the dot.
func (f Format) Extension() string {
	switch f {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// Compress replaces the file at path with a compressed copy and returns
// the new path. With None it returns path unchanged. On error the plain
// file is left in place and any partial output is removed.
func Compress(path string, format Format) (string, error) {
	if format == None || format == "" {
		return path, nil
	}
	if format != Zstd && format != LZ4 {
		return "", fmt.Errorf("unknown log compression %q", format)
	}

	source, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening log: %w", err)
	}
	defer source.Close()

	target := path + format.Extension()
	destination, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", target, err)
	}

	if err := compressStream(destination, source, format); err != nil {
		destination.Close()
		os.Remove(target)
		return "", fmt.Errorf("compressing %s: %w", path, err)
	}
	if err := destination.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("closing %s: %w", target, err)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("removing plain log: %w", err)
	}
	return target, nil
}

func compressStream(destination io.Writer, source io.Reader, format Format) error {
	var writer io.WriteCloser
	switch format {
	case Zstd:
		encoder, err := zstd.NewWriter(destination)
		if err != nil {
			return err
		}
		writer = encoder
	case LZ4:
		writer = lz4.NewWriter(destination)
	}
	_, copyErr := io.Copy(writer, source)
	return errors.Join(copyErr, writer.Close())
}

// Open returns a reader over the decompressed contents of a log written
// by Compress. The format is taken from the file's extension; a path
// without a known extension is read as plain text.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, Zstd.Extension()):
		decoder, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return &zstdReadCloser{decoder: decoder, file: file}, nil
	case strings.HasSuffix(path, LZ4.Extension()):
		return &readCloser{Reader: lz4.NewReader(file), file: file}, nil
	default:
		return file, nil
	}
}

type readCloser struct {
	io.Reader
	file *os.File
}

func (r *readCloser) Close() error { return r.file.Close() }

type zstdReadCloser struct {
	decoder *zstd.Decoder
	file    *os.File
}

func (r *zstdReadCloser) Read(p []byte) (int, error) { return r.decoder.Read(p) }

func (r *zstdReadCloser) Close() error {
	r.decoder.Close()
	return r.file.Close()
}
