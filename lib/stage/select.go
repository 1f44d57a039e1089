// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stage

// Variant identifies one of the two builds of a size-dependent stage.
type Variant int

const (
	// Standard is the default build with 32-bit offsets.
	Standard Variant = iota

	// LargeOffset is the build with 64-bit offsets.
	LargeOffset
)

// String returns "standard" or "large-offset".
func (v Variant) String() string {
	switch v {
	case Standard:
		return "standard"
	case LargeOffset:
		return "large-offset"
	default:
		return "unknown"
	}
}

const (
	// ParseBWTThreshold is the smallest parse size, in bytes, that
	// requires the large-offset parse-BWT build: 2^31-4 records of 4
	// bytes each.
	ParseBWTThreshold int64 = 4 * (1<<31 - 4)

	// ReferenceThreshold is the smallest input size, in bytes, that
	// requires the large-offset reference build.
	ReferenceThreshold int64 = 1 << 31
)

// SelectParseBWT returns the parse-BWT build for a parse of parseSize
// bytes.
func SelectParseBWT(parseSize int64) Variant {
	if parseSize >= ParseBWTThreshold {
		return LargeOffset
	}
	return Standard
}

// SelectReference returns the reference-BWT build for an input of
// inputSize bytes.
func SelectReference(inputSize int64) Variant {
	if inputSize >= ReferenceThreshold {
		return LargeOffset
	}
	return Standard
}
