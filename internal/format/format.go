// Package format escapes untrusted text for markup and formats the small
// value fragments (money, hours, timestamps, quantities) shared by every
// view renderer.
package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/Iron-Ham/workorders/internal/model"
)

// Placeholder is shown wherever a value is absent.
const Placeholder = "—"

// DefaultTimeLayout renders stage timestamps as day.month.year, time.
const DefaultTimeLayout = "02.01.2006, 15:04:05"

// Currency is appended to monetary values.
const Currency = "RUB"

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
)

// EscapeText escapes the markup-significant characters &, < and > so that
// untrusted text can be embedded as element content.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes s for use inside a quoted attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// OrDash returns s, or the placeholder when s is empty.
func OrDash(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// Money formats a monetary amount, using the placeholder for a missing one.
func Money(amount *int64) string {
	if amount == nil {
		return Placeholder + " " + Currency
	}
	return strconv.FormatInt(*amount, 10) + " " + Currency
}

// Balance formats a known monetary amount.
func Balance(amount int64) string {
	return Money(&amount)
}

// Hours formats an hours quantity, using the placeholder for a missing one.
func Hours(hours *int64) string {
	if hours == nil {
		return Placeholder + " h"
	}
	return strconv.FormatInt(*hours, 10) + " h"
}

// StageValue formats a stage's progress measure according to the order's
// display mode: money for sums, hours otherwise.
func StageValue(mode model.DisplayMode, s model.Stage) string {
	if mode == model.DisplaySums {
		return Money(s.Amount)
	}
	return Hours(s.Hours)
}

// ModeLabel is the human label for a stage display mode.
func ModeLabel(mode model.DisplayMode) string {
	if mode == model.DisplaySums {
		return "by amounts"
	}
	return "by hours"
}

// Quantity prefixes n with a multiplication sign.
func Quantity(n int64) string {
	return "×" + strconv.FormatInt(n, 10)
}

// Timestamp renders ts in loc with layout. A zero timestamp renders as the
// placeholder; an empty layout uses DefaultTimeLayout; a nil loc uses
// time.Local.
func Timestamp(ts model.Timestamp, layout string, loc *time.Location) string {
	if ts.IsZero() {
		return Placeholder
	}
	if layout == "" {
		layout = DefaultTimeLayout
	}
	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format(layout)
}

// FileName returns the display name of a file, falling back to a generic
// label when the server sent none.
func FileName(f model.OrderFile) string {
	if f.Name == nil || strings.TrimSpace(*f.Name) == "" {
		return "File"
	}
	return *f.Name
}
