// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Executables holds the identity of every external program a run may
// invoke. An identity containing a path separator is used as a path
// (relative to the working directory unless absolute); a bare name is
// looked up in PATH when launched.
type Executables struct {
	Parse       string `yaml:"parse" json:"parse"`
	ParseBWT    string `yaml:"parse_bwt" json:"parse_bwt"`
	ParseBWT64  string `yaml:"parse_bwt_64" json:"parse_bwt_64"`
	FinalBWT    string `yaml:"final_bwt" json:"final_bwt"`
	Reference   string `yaml:"reference" json:"reference"`
	Reference64 string `yaml:"reference_64" json:"reference_64"`
}

// DefaultExecutables returns the identities used when nothing else is
// configured: the programs as built next to the caller's working
// directory.
func DefaultExecutables() Executables {
	return Executables{
		Parse:       "./newscan.x",
		ParseBWT:    "./bwtparse",
		ParseBWT64:  "./bwtparse64",
		FinalBWT:    "./pfbwt.x",
		Reference:   "./simplebwt",
		Reference64: "./simplebwt64",
	}
}

// Merge returns e with every empty identity filled in from fallback.
func (e Executables) Merge(fallback Executables) Executables {
	pick := func(value, other string) string {
		if value != "" {
			return value
		}
		return other
	}
	return Executables{
		Parse:       pick(e.Parse, fallback.Parse),
		ParseBWT:    pick(e.ParseBWT, fallback.ParseBWT),
		ParseBWT64:  pick(e.ParseBWT64, fallback.ParseBWT64),
		FinalBWT:    pick(e.FinalBWT, fallback.FinalBWT),
		Reference:   pick(e.Reference, fallback.Reference),
		Reference64: pick(e.Reference64, fallback.Reference64),
	}
}

// Resolve returns e with every relative identity that names a path
// (contains a separator) re-rooted at directory. Bare names are left
// for PATH lookup and absolute paths are unchanged. An empty directory
// returns e unchanged.
func (e Executables) Resolve(directory string) Executables {
	if directory == "" {
		return e
	}
	resolve := func(identity string) string {
		if identity == "" || filepath.IsAbs(identity) || !strings.ContainsRune(identity, filepath.Separator) {
			return identity
		}
		return filepath.Join(directory, identity)
	}
	return Executables{
		Parse:       resolve(e.Parse),
		ParseBWT:    resolve(e.ParseBWT),
		ParseBWT64:  resolve(e.ParseBWT64),
		FinalBWT:    resolve(e.FinalBWT),
		Reference:   resolve(e.Reference),
		Reference64: resolve(e.Reference64),
	}
}

// Validate reports every empty identity.
func (e Executables) Validate() error {
	var errs []error
	for _, field := range []struct {
		name  string
		value string
	}{
		{"parse", e.Parse},
		{"parse_bwt", e.ParseBWT},
		{"parse_bwt_64", e.ParseBWT64},
		{"final_bwt", e.FinalBWT},
		{"reference", e.Reference},
		{"reference_64", e.Reference64},
	} {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Errorf("executables.%s is empty", field.name))
		}
	}
	return errors.Join(errs...)
}

// For returns the identity of the given role and variant. Roles with a
// single build ignore variant.
func (e Executables) For(role Role, variant Variant) (string, error) {
	switch role {
	case Parse:
		return e.Parse, nil
	case ParseBWT:
		if variant == LargeOffset {
			return e.ParseBWT64, nil
		}
		return e.ParseBWT, nil
	case FinalBWT:
		return e.FinalBWT, nil
	case Reference:
		if variant == LargeOffset {
			return e.Reference64, nil
		}
		return e.Reference, nil
	default:
		return "", fmt.Errorf("unknown stage role %d", role)
	}
}
