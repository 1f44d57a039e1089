// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package console writes the operator-facing progress of a run.
//
// Progress is plain text, one message per line. When color is enabled
// (a terminal, or --color=always) stage headers are bold, a matching
// verification is green, and failures are red. With color disabled
// the output is byte-identical to the unstyled messages, which is what
// scripts and tests see.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode controls styling of console output.
type ColorMode string

const (
	// ColorAuto styles output only when it goes to a terminal.
	ColorAuto ColorMode = "auto"

	// ColorAlways styles output regardless of the destination.
	ColorAlways ColorMode = "always"

	// ColorNever never styles output.
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a --color value.
func ParseColorMode(value string) (ColorMode, error) {
	switch mode := ColorMode(value); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always, or never)", value)
	}
}

// Console writes progress messages to an output stream.
type Console struct {
	out     io.Writer
	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// New returns a Console writing to out.
func New(out io.Writer, mode ColorMode) *Console {
	renderer := lipgloss.NewRenderer(out)
	renderer.SetColorProfile(profile(out, mode))

	return &Console{
		out:     out,
		header:  renderer.NewStyle().Bold(true),
		success: renderer.NewStyle().Foreground(lipgloss.Color("2")),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Discard returns a Console that writes nothing.
func Discard() *Console {
	return New(io.Discard, ColorNever)
}

func profile(out io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		return termenv.ANSI256
	}
	file, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return termenv.Ascii
	}
	return termenv.NewOutput(file).EnvColorProfile()
}

// Header writes a stage header: "==== " followed by the message.
func (c *Console) Header(format string, args ...any) {
	fmt.Fprintln(c.out, c.header.Render("==== "+fmt.Sprintf(format, args...)))
}

// Printf writes an unstyled line. A trailing newline is added.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Success writes a line styled as a positive outcome.
func (c *Console) Success(message string) {
	fmt.Fprintln(c.out, c.success.Render(message))
}

// Failure writes a line styled as a failure.
func (c *Console) Failure(message string) {
	fmt.Fprintln(c.out, c.failure.Render(message))
}
