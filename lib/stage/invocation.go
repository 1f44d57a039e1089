// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stage

import (
	"fmt"
	"strconv"
	"strings"
)

// Role identifies what an external program does in the pipeline.
type Role int

const (
	// Parse tokenizes the input into a dictionary and a parse.
	Parse Role = iota

	// ParseBWT computes the BWT of the parse.
	ParseBWT

	// FinalBWT merges dictionary and parse-BWT into the final transform.
	FinalBWT

	// Reference computes the transform directly, for verification.
	Reference
)

// String returns the role name used in logs and result records.
func (r Role) String() string {
	switch r {
	case Parse:
		return "parse"
	case ParseBWT:
		return "parse-bwt"
	case FinalBWT:
		return "final-bwt"
	case Reference:
		return "reference-bwt"
	default:
		return "unknown"
	}
}

// Invocation is a fully formed external program run: the executable and
// its arguments, without a shell.
type Invocation struct {
	Role       Role
	Variant    Variant
	Executable string
	Args       []string
}

// Argv returns the executable followed by its arguments.
func (i Invocation) Argv() []string {
	argv := make([]string, 0, len(i.Args)+1)
	argv = append(argv, i.Executable)
	return append(argv, i.Args...)
}

// String returns the command line as shown to operators. Arguments
// containing whitespace or quotes are quoted so the line can be pasted
// back into a shell.
func (i Invocation) String() string {
	argv := i.Argv()
	parts := make([]string, len(argv))
	for index, argument := range argv {
		if argument == "" || strings.ContainsAny(argument, " \t\n'\"\\$`") {
			parts[index] = strconv.Quote(argument)
		} else {
			parts[index] = argument
		}
	}
	return strings.Join(parts, " ")
}

// ParseInvocation builds the parsing stage: "<parse> <wsize> <mod>
// <input>".
func ParseInvocation(executables Executables, windowSize, modulus int, input string) (Invocation, error) {
	if windowSize <= 0 {
		return Invocation{}, fmt.Errorf("parse: window size must be positive, got %d", windowSize)
	}
	if modulus <= 0 {
		return Invocation{}, fmt.Errorf("parse: hash modulus must be positive, got %d", modulus)
	}
	return build(executables, Parse, Standard, input,
		strconv.Itoa(windowSize), strconv.Itoa(modulus), input)
}

// ParseBWTInvocation builds the parse-BWT stage: "<bwtparse> <input>"
// using the given build.
func ParseBWTInvocation(executables Executables, variant Variant, input string) (Invocation, error) {
	return build(executables, ParseBWT, variant, input, input)
}

// FinalBWTInvocation builds the merge stage: "<pfbwt> <wsize> <input>".
func FinalBWTInvocation(executables Executables, windowSize int, input string) (Invocation, error) {
	if windowSize <= 0 {
		return Invocation{}, fmt.Errorf("final-bwt: window size must be positive, got %d", windowSize)
	}
	return build(executables, FinalBWT, Standard, input, strconv.Itoa(windowSize), input)
}

// ReferenceInvocation builds the reference stage: "<simplebwt> <input>"
// using the given build.
func ReferenceInvocation(executables Executables, variant Variant, input string) (Invocation, error) {
	return build(executables, Reference, variant, input, input)
}

func build(executables Executables, role Role, variant Variant, input string, args ...string) (Invocation, error) {
	if variant != Standard && variant != LargeOffset {
		return Invocation{}, fmt.Errorf("%s: unknown variant %d", role, variant)
	}
	if input == "" {
		return Invocation{}, fmt.Errorf("%s: input path is empty", role)
	}
	// A leading dash would be read as an option by the stage.
	if strings.HasPrefix(input, "-") {
		return Invocation{}, fmt.Errorf("%s: input path %q starts with '-'; prefix it with ./", role, input)
	}
	executable, err := executables.For(role, variant)
	if err != nil {
		return Invocation{}, err
	}
	if executable == "" {
		return Invocation{}, fmt.Errorf("%s: no %s executable configured", role, variant)
	}
	return Invocation{
		Role:       role,
		Variant:    variant,
		Executable: executable,
		Args:       args,
	}, nil
}
