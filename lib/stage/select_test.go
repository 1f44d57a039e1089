// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stage

import (
	"math"
	"testing"
)

func TestThresholds(t *testing.T) {
	t.Parallel()

	if ParseBWTThreshold != 8589934576 {
		t.Errorf("ParseBWTThreshold = %d, want 8589934576", ParseBWTThreshold)
	}
	if ParseBWTThreshold%4 != 0 {
		t.Errorf("ParseBWTThreshold = %d is not a whole number of 4-byte records", ParseBWTThreshold)
	}
	if ReferenceThreshold != 2147483648 {
		t.Errorf("ReferenceThreshold = %d, want 2147483648", ReferenceThreshold)
	}
}

func TestSelectParseBWT(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int64
		want Variant
	}{
		{"empty parse", 0, Standard},
		{"small parse", 4000, Standard},
		{"one record below", ParseBWTThreshold - 4, Standard},
		{"one byte below", ParseBWTThreshold - 1, Standard},
		{"at threshold", ParseBWTThreshold, LargeOffset},
		{"one byte above", ParseBWTThreshold + 1, LargeOffset},
		{"2 GiB parse stays standard", ReferenceThreshold, Standard},
		{"max size", math.MaxInt64, LargeOffset},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := SelectParseBWT(test.size); got != test.want {
				t.Errorf("SelectParseBWT(%d) = %s, want %s", test.size, got, test.want)
			}
		})
	}
}

func TestSelectReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int64
		want Variant
	}{
		{"empty input", 0, Standard},
		{"1000 bytes", 1000, Standard},
		{"one byte below", ReferenceThreshold - 1, Standard},
		{"at threshold", ReferenceThreshold, LargeOffset},
		{"one byte above", ReferenceThreshold + 1, LargeOffset},
		{"max size", math.MaxInt64, LargeOffset},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := SelectReference(test.size); got != test.want {
				t.Errorf("SelectReference(%d) = %s, want %s", test.size, got, test.want)
			}
		})
	}
}

func TestSelectIsMonotonic(t *testing.T) {
	t.Parallel()

	// Once a selector switches to the large-offset build, every larger
	// size must also select it.
	for _, selector := range []struct {
		name      string
		selector  func(int64) Variant
		threshold int64
	}{
		{"parse-bwt", SelectParseBWT, ParseBWTThreshold},
		{"reference", SelectReference, ReferenceThreshold},
	} {
		previous := Standard
		for delta := int64(-8); delta <= 8; delta++ {
			size := selector.threshold + delta
			got := selector.selector(size)
			if previous == LargeOffset && got == Standard {
				t.Errorf("%s: size %d selected standard after a smaller size selected large-offset", selector.name, size)
			}
			previous = got
		}
	}
}

func TestVariantString(t *testing.T) {
	t.Parallel()

	if Standard.String() != "standard" {
		t.Errorf("Standard.String() = %q", Standard.String())
	}
	if LargeOffset.String() != "large-offset" {
		t.Errorf("LargeOffset.String() = %q", LargeOffset.String())
	}
	if Variant(7).String() != "unknown" {
		t.Errorf("Variant(7).String() = %q", Variant(7).String())
	}
}
