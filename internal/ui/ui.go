// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui holds the CLI's colorized output helpers: a small palette of
// fatih/color instances plus wrappers for headers, labels, and counts, all
// gated on whether stdout is actually a terminal.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	Cyan   = color.New(color.FgCyan)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Dim    = color.New(color.Faint)
)

// InitColors disables color globally when noColor is set, NO_COLOR is
// present in the environment, or stdout is not a terminal.
func InitColors(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// Header prints a top-level section title.
func Header(title string) {
	_, _ = Cyan.Printf("== %s ==\n", title)
}

// SubHeader prints a nested section title, indented one level under Header.
func SubHeader(title string) {
	fmt.Printf("  %s\n", title)
}

// Label renders a field label in a consistent width-agnostic style.
func Label(text string) string {
	return Dim.Sprint(text)
}

// DimText renders arbitrary text in the faint style, for paths and
// secondary detail.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText renders an integer count, yellow when zero (drawing the eye to
// an empty result) and plain otherwise.
func CountText(n int) string {
	if n == 0 {
		return Yellow.Sprint("0")
	}
	return fmt.Sprintf("%d", n)
}

// Info prints an informational line to stdout.
func Info(msg string) {
	fmt.Println(msg)
}

// Infof prints a formatted informational line to stdout.
func Infof(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Success prints a green success line.
func Success(msg string) {
	_, _ = Green.Println(msg)
}

// Successf prints a formatted green success line.
func Successf(format string, args ...any) {
	_, _ = Green.Printf(format+"\n", args...)
}

// Warning prints a yellow warning line to stderr.
func Warning(msg string) {
	_, _ = Yellow.Fprintln(os.Stderr, msg)
}

// Warningf prints a formatted yellow warning line to stderr.
func Warningf(format string, args ...any) {
	_, _ = Yellow.Fprintf(os.Stderr, format+"\n", args...)
}
