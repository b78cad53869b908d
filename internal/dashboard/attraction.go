package dashboard

import (
	"strconv"
	"strings"

	"github.com/fyrsmithlabs/socialintel/internal/content"
)

// Trait is a behavioural factor with its score badge.
type Trait struct {
	Trait            string  `json:"trait"`
	Score            float64 `json:"score"`
	Badge            string  `json:"badge"`
	HowToDemonstrate string  `json:"how_to_demonstrate"`
	GenderDifference string  `json:"gender_difference"`
}

// RadarSeries is the polar chart of trait scores.
type RadarSeries struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
	Max    float64   `json:"max"`
}

// AttractionView is the research-insights tab.
type AttractionView struct {
	PhysicalFactors []content.PhysicalFactor `json:"physical_factors"`
	Traits          []Trait                  `json:"traits"`
	Radar           RadarSeries              `json:"radar"`
	KeyInsights     []content.KeyInsight     `json:"key_insights"`
}

// BuildAttraction builds the research-insights view.
func BuildAttraction(a *content.AttractionResearch) AttractionView {
	v := AttractionView{
		PhysicalFactors: a.PhysicalFactors,
		Traits:          make([]Trait, 0, len(a.BehavioralFactors)),
		Radar: RadarSeries{
			Labels: make([]string, 0, len(a.BehavioralFactors)),
			Scores: make([]float64, 0, len(a.BehavioralFactors)),
			Max:    10,
		},
		KeyInsights: a.KeyInsights,
	}
	for _, b := range a.BehavioralFactors {
		v.Traits = append(v.Traits, Trait{
			Trait:            b.Trait,
			Score:            b.AttractivenessScore,
			Badge:            OutOfTen(b.AttractivenessScore),
			HowToDemonstrate: b.HowToDemonstrate,
			GenderDifference: b.GenderDifference,
		})
		v.Radar.Labels = append(v.Radar.Labels, b.Trait)
		v.Radar.Scores = append(v.Radar.Scores, b.AttractivenessScore)
	}
	return v
}

// OutOfTen formats a 0-10 rating as "8.5/10". Whole numbers keep one
// decimal ("9.0/10").
func OutOfTen(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s + "/10"
}
