// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stage

import (
	"strings"
	"testing"
)

func TestExecutablesResolve(t *testing.T) {
	t.Parallel()

	executables := Executables{
		Parse:       "./newscan.x",
		ParseBWT:    "bwtparse",
		ParseBWT64:  "/opt/bigbwt/bwtparse64",
		FinalBWT:    "bin/pfbwt.x",
		Reference:   "./simplebwt",
		Reference64: "",
	}
	resolved := executables.Resolve("/usr/local/lib/bigbwt")

	if resolved.Parse != "/usr/local/lib/bigbwt/newscan.x" {
		t.Errorf("Parse = %q", resolved.Parse)
	}
	if resolved.ParseBWT != "bwtparse" {
		t.Errorf("bare name should stay a PATH lookup, got %q", resolved.ParseBWT)
	}
	if resolved.ParseBWT64 != "/opt/bigbwt/bwtparse64" {
		t.Errorf("absolute path changed: %q", resolved.ParseBWT64)
	}
	if resolved.FinalBWT != "/usr/local/lib/bigbwt/bin/pfbwt.x" {
		t.Errorf("FinalBWT = %q", resolved.FinalBWT)
	}
	if resolved.Reference64 != "" {
		t.Errorf("empty identity changed: %q", resolved.Reference64)
	}

	if unchanged := executables.Resolve(""); unchanged != executables {
		t.Errorf("Resolve(\"\") changed executables: %+v", unchanged)
	}
}

func TestExecutablesMerge(t *testing.T) {
	t.Parallel()

	merged := Executables{Parse: "/custom/newscan"}.Merge(DefaultExecutables())
	if merged.Parse != "/custom/newscan" {
		t.Errorf("Parse = %q, want override", merged.Parse)
	}
	if merged.Reference64 != "./simplebwt64" {
		t.Errorf("Reference64 = %q, want default", merged.Reference64)
	}
}

func TestExecutablesValidate(t *testing.T) {
	t.Parallel()

	if err := DefaultExecutables().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	err := Executables{Parse: "x"}.Validate()
	if err == nil {
		t.Fatal("missing identities should fail validation")
	}
	for _, name := range []string{"parse_bwt", "parse_bwt_64", "final_bwt", "reference", "reference_64"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should mention %s: %v", name, err)
		}
	}
}

func TestExecutablesFor(t *testing.T) {
	t.Parallel()

	executables := DefaultExecutables()
	tests := []struct {
		role    Role
		variant Variant
		want    string
	}{
		{Parse, Standard, "./newscan.x"},
		{Parse, LargeOffset, "./newscan.x"},
		{ParseBWT, Standard, "./bwtparse"},
		{ParseBWT, LargeOffset, "./bwtparse64"},
		{FinalBWT, LargeOffset, "./pfbwt.x"},
		{Reference, Standard, "./simplebwt"},
		{Reference, LargeOffset, "./simplebwt64"},
	}
	for _, test := range tests {
		got, err := executables.For(test.role, test.variant)
		if err != nil {
			t.Errorf("For(%s, %s): %v", test.role, test.variant, err)
			continue
		}
		if got != test.want {
			t.Errorf("For(%s, %s) = %q, want %q", test.role, test.variant, got, test.want)
		}
	}
	if _, err := executables.For(Role(42), Standard); err == nil {
		t.Error("unknown role should fail")
	}
}
