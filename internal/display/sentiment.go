// Package display holds the pure value transforms behind the dashboard:
// sentiment classification, probability complements, label truncation and
// the small formatting helpers the templates and the CLI share.
//
// Every function here is pure and safe for concurrent use. Inputs outside
// their documented domain are not clamped or rejected: out-of-range values
// produce arithmetically consistent output and no error.
package display

import "fmt"

// Sentiment thresholds. Both comparisons are strict, so a score exactly at
// a threshold is Neutral.
const (
	PositiveThreshold = 0.3
	NegativeThreshold = -0.3
)

// Bucket is a coarse sentiment class.
type Bucket int

const (
	Neutral Bucket = iota
	Positive
	Negative
)

// String returns the display label of the bucket.
func (b Bucket) String() string {
	switch b {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return "Neutral"
	}
}

// Sentiment is the classified form of a sentiment score.
type Sentiment struct {
	Bucket Bucket `json:"-"`
	Label  string `json:"label"`
	Emoji  string `json:"emoji"`
	Color  string `json:"color"`
}

// ClassifySentiment maps a score to Positive (> 0.3), Negative (< -0.3) or
// Neutral. It is total: scores outside [-1, 1] are classified by the same
// rule and NaN is Neutral.
func ClassifySentiment(score float64) Sentiment {
	switch {
	case score > PositiveThreshold:
		return Sentiment{Bucket: Positive, Label: Positive.String(), Emoji: "😊", Color: Palette.GreenPrimary}
	case score < NegativeThreshold:
		return Sentiment{Bucket: Negative, Label: Negative.String(), Emoji: "😟", Color: Palette.RedPrimary}
	default:
		return Sentiment{Bucket: Neutral, Label: Neutral.String(), Emoji: "😐", Color: Palette.Neutral}
	}
}

// Indicator renders a score as "😊 Positive (+0.85)".
func Indicator(score float64) string {
	s := ClassifySentiment(score)
	return fmt.Sprintf("%s %s (%s)", s.Emoji, s.Label, FormatSigned(score, 2))
}
