// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package verify

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/bigbwt/lib/digest"
)

// Outcomes reported by [Result.Outcome].
const (
	OutcomeMatch  = "match"
	OutcomeDiffer = "differ"
)

// compareChunk is the read size for each side of the comparison.
const compareChunk = 1 << 20

// Result is the outcome of comparing two transforms.
type Result struct {
	Match bool `json:"match" cbor:"match"`

	// Offset is the zero-based offset of the first differing byte, or
	// -1 when the files match or could not be read.
	Offset int64 `json:"offset" cbor:"offset"`

	// Reason explains a mismatch. Empty on match.
	Reason string `json:"reason,omitempty" cbor:"reason,omitempty"`

	// PipelineDigest and ReferenceDigest are hex BLAKE3 digests of the
	// compared files, empty when the file could not be hashed.
	PipelineDigest  string `json:"pipeline_digest,omitempty" cbor:"pipeline_digest,omitempty"`
	ReferenceDigest string `json:"reference_digest,omitempty" cbor:"reference_digest,omitempty"`
}

// Outcome returns "match" or "differ".
func (r Result) Outcome() string {
	if r.Match {
		return OutcomeMatch
	}
	return OutcomeDiffer
}

// Compare reports whether the files at pipelinePath and referencePath
// have identical contents.
func Compare(pipelinePath, referencePath string) Result {
	result := compareFiles(pipelinePath, referencePath)
	if sum, err := digest.HashFile(pipelinePath); err == nil {
		result.PipelineDigest = digest.Format(sum)
	}
	if sum, err := digest.HashFile(referencePath); err == nil {
		result.ReferenceDigest = digest.Format(sum)
	}
	return result
}

func compareFiles(pipelinePath, referencePath string) Result {
	pipelineFile, err := os.Open(pipelinePath)
	if err != nil {
		return Result{Offset: -1, Reason: err.Error()}
	}
	defer pipelineFile.Close()

	referenceFile, err := os.Open(referencePath)
	if err != nil {
		return Result{Offset: -1, Reason: err.Error()}
	}
	defer referenceFile.Close()

	match, offset, err := compareReaders(
		bufio.NewReaderSize(pipelineFile, compareChunk),
		bufio.NewReaderSize(referenceFile, compareChunk),
	)
	switch {
	case err != nil:
		return Result{Offset: -1, Reason: err.Error()}
	case match:
		return Result{Match: true, Offset: -1}
	}

	pipelineSize, referenceSize := fileSize(pipelineFile), fileSize(referenceFile)
	if offset == min(pipelineSize, referenceSize) && pipelineSize != referenceSize {
		shorter := pipelinePath
		if referenceSize < pipelineSize {
			shorter = referencePath
		}
		return Result{
			Offset: offset,
			Reason: fmt.Sprintf("EOF on %s after byte %d", shorter, offset),
		}
	}
	return Result{
		Offset: offset,
		Reason: fmt.Sprintf("%s %s differ: byte %d", pipelinePath, referencePath, offset+1),
	}
}

// compareReaders returns whether a and b yield the same bytes and, if
// not, the offset of the first difference (the length of the shorter
// stream when one is a prefix of the other).
func compareReaders(a, b io.Reader) (bool, int64, error) {
	bufferA := make([]byte, compareChunk)
	bufferB := make([]byte, compareChunk)
	var offset int64

	for {
		countA, errA := io.ReadFull(a, bufferA)
		countB, errB := io.ReadFull(b, bufferB)
		if errA != nil && errA != io.EOF && errA != io.ErrUnexpectedEOF {
			return false, -1, errA
		}
		if errB != nil && errB != io.EOF && errB != io.ErrUnexpectedEOF {
			return false, -1, errB
		}

		common := min(countA, countB)
		if index := firstDifference(bufferA[:common], bufferB[:common]); index >= 0 {
			return false, offset + int64(index), nil
		}
		if countA != countB {
			return false, offset + int64(common), nil
		}
		offset += int64(countA)

		// A short read means both streams ended at the same length.
		if countA < compareChunk {
			return true, -1, nil
		}
	}
}

func firstDifference(a, b []byte) int {
	if bytes.Equal(a, b) {
		return -1
	}
	for index := range a {
		if a[index] != b[index] {
			return index
		}
	}
	return -1
}

func fileSize(file *os.File) int64 {
	info, err := file.Stat()
	if err != nil {
		return -1
	}
	return info.Size()
}
