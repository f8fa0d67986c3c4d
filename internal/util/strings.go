// Package util provides terminal text helpers shared by the view adapters.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// TruncateANSI truncates s to maxWidth visual columns, ending in an
// ellipsis when cut. ANSI escape codes and wide characters are accounted
// for.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return Ellipsis
	}
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// WrapANSI wraps s to width columns, breaking on spaces and hyphens and
// hard-wrapping words that do not fit. Existing newlines are kept.
func WrapANSI(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wrap(s, width, "-")
}

// Indent prefixes every line of s with n spaces.
func Indent(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

// PlainText strips ANSI escape codes.
func PlainText(s string) string {
	return ansi.Strip(s)
}
