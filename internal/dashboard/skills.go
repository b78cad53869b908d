package dashboard

import (
	"github.com/fyrsmithlabs/socialintel/internal/content"
	"github.com/fyrsmithlabs/socialintel/internal/display"
)

// Tip is a communication tip with its effectiveness bar.
type Tip struct {
	Category      string                   `json:"category"`
	Effectiveness string                   `json:"effectiveness"`
	Context       string                   `json:"context"`
	Do            string                   `json:"do"`
	Dont          string                   `json:"dont"`
	ExampleGood   string                   `json:"example_good"`
	ExampleBad    string                   `json:"example_bad"`
	Bar           display.ProbabilitySplit `json:"bar"`
}

// StarterColumn is one column of conversation starters.
type StarterColumn struct {
	Title string   `json:"title"`
	Icon  string   `json:"icon"`
	Color string   `json:"color"`
	Items []string `json:"items"`
}

// SkillsView is the communication-tips tab.
type SkillsView struct {
	Tips           []Tip                        `json:"tips"`
	BodyLanguage   []content.BodyLanguageSignal `json:"body_language"`
	Starters       []StarterColumn              `json:"starters"`
	CommonMistakes []content.CommonMistake      `json:"common_mistakes"`
}

// BuildSkills builds the communication-tips view.
func BuildSkills(s *content.SocialSkills) SkillsView {
	tips := make([]Tip, 0, len(s.CommunicationTips))
	for _, t := range s.CommunicationTips {
		tips = append(tips, Tip{
			Category:      t.Category,
			Effectiveness: OutOfTen(t.Effectiveness),
			Context:       t.Context,
			Do:            t.Do,
			Dont:          t.Dont,
			ExampleGood:   t.ExampleGood,
			ExampleBad:    t.ExampleBad,
			Bar:           display.NewProbabilitySplit(display.EffectivenessPercent(t.Effectiveness)),
		})
	}

	cs := s.ConversationStarters
	return SkillsView{
		Tips:         tips,
		BodyLanguage: s.BodyLanguage,
		Starters: []StarterColumn{
			{Title: "Situational", Icon: "🎯", Color: display.Palette.GreenPrimary, Items: cs.Situational},
			{Title: "Interest-Based", Icon: "💡", Color: display.Palette.Info, Items: cs.InterestBased},
			{Title: "Direct", Icon: "🎪", Color: display.Palette.Neutral, Items: cs.Direct},
		},
		CommonMistakes: s.CommonMistakes,
	}
}
