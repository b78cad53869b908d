package display

import (
	"strconv"
	"unicode/utf8"
)

// Ellipsis is appended to truncated labels.
const Ellipsis = "..."

// ComplementPercentage returns 100 - p.
//
// p is expected in [0, 100], in which case p + ComplementPercentage(p) is
// exactly 100. The result is not clamped: ComplementPercentage(120) is -20.
// Callers that rely on the pair summing to a valid split must pass a valid p.
func ComplementPercentage(p int) int {
	return 100 - p
}

// ProbabilitySplit is a favourable/unfavourable percentage pair for a
// two-colour bar.
type ProbabilitySplit struct {
	Favorable   int `json:"favorable"`
	Unfavorable int `json:"unfavorable"`
}

// NewProbabilitySplit pairs p with its complement. Same contract as
// ComplementPercentage.
func NewProbabilitySplit(p int) ProbabilitySplit {
	return ProbabilitySplit{Favorable: p, Unfavorable: ComplementPercentage(p)}
}

// TruncateLabel shortens text for chart axes.
//
// Length is counted in runes. When text fits in maxLen runes it is returned
// unchanged. Otherwise the first maxLen runes are kept and Ellipsis is
// appended, so the result is maxLen+3 runes long.
//
// When maxLen <= 0 and text does not fit, the result is just Ellipsis. An
// empty text fits any maxLen >= 0, so ("", 0) is "" while ("", -3) is
// Ellipsis.
func TruncateLabel(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	if maxLen <= 0 {
		return Ellipsis
	}
	n := 0
	for i := range text {
		if n == maxLen {
			return text[:i] + Ellipsis
		}
		n++
	}
	return text
}

// FormatSigned formats v with an explicit sign, e.g. "+0.85" or "-0.12".
func FormatSigned(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if v >= 0 && s[0] != '+' && s[0] != '-' {
		return "+" + s
	}
	return s
}

// FormatVelocity formats a growth rate as a signed percentage, e.g. "+12.5%".
func FormatVelocity(v float64) string {
	return FormatSigned(v, 1) + "%"
}

// EffectivenessPercent maps a 0-10 rating onto a 0-100 bar, truncating
// toward zero. Like ComplementPercentage it does not clamp.
func EffectivenessPercent(rating float64) int {
	return int(rating * 10)
}

// Change is the delta line under a metric card.
type Change struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Positive bool   `json:"positive"`
}

// Arrow returns "↑" for positive changes and "↓" otherwise.
func (c Change) Arrow() string {
	if c.Positive {
		return "↑"
	}
	return "↓"
}

// Color returns the palette colour for the change direction.
func (c Change) Color() string {
	if c.Positive {
		return Palette.GreenPrimary
	}
	return Palette.RedPrimary
}
