// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"fmt"
	"os"
)

// Artifact suffixes. The external stages hard-code these names; they
// cannot be changed here without changing the stages.
const (
	// Log is the shared log that captures the output of every stage.
	Log = "log"

	// Parse is the parse sequence written by the parsing stage, one
	// 4-byte phrase rank per phrase.
	Parse = "parse"

	// ParseOld is the parsing stage's pre-ranking copy of the parse.
	ParseOld = "parse_old"

	// Last holds the character preceding each phrase of the parse.
	Last = "last"

	// BWLast is the parse-BWT stage's permutation of Last.
	BWLast = "bwlast"

	// Dict is the phrase dictionary written by the parsing stage.
	Dict = "dict"

	// IList is the inverted list written by the parse-BWT stage.
	IList = "ilist"

	// Occ holds the phrase occurrence counts.
	Occ = "occ"

	// BWT is the final transform produced by the merge stage.
	BWT = "bwt"

	// ReferenceBWT is the transform produced by the reference stage
	// during verification. It differs from BWT only in case.
	ReferenceBWT = "Bwt"
)

// Intermediates is the fixed set of artifacts deleted after a
// successful construction. Order matches the order the deletion is
// reported in.
var Intermediates = []string{Parse, ParseOld, Last, BWLast, Dict, IList, Occ}

// Path returns the path of the artifact with the given suffix for
// input.
func Path(input, suffix string) string {
	return input + "." + suffix
}

// Size returns the size in bytes of the file at path.
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("measuring %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("measuring %s: not a regular file", path)
	}
	return info.Size(), nil
}
