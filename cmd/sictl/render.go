package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fyrsmithlabs/socialintel/internal/dashboard"
	"github.com/fyrsmithlabs/socialintel/internal/display"
)

// Styles (design system palette)
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(display.Palette.TextPrimary)).
			Background(lipgloss.Color(display.Palette.BgCard)).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(display.Palette.Info)).
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(display.Palette.TextSecondary))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(display.Palette.TextMuted))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(display.Palette.GreenPrimary)).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(display.Palette.RedPrimary)).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(display.Palette.TextPrimary)).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(display.Palette.BorderDefault))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(display.Palette.BorderDefault)).
			Padding(0, 1)
)

const barWidth = 20

func statusBadge(status string) string {
	if status == "ok" {
		return okStyle.Render("✓ " + status)
	}
	return errorStyle.Render("✗ " + status)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// bar draws a horizontal bar of pct percent.
func bar(pct int, color string) string {
	filled := pct * barWidth / 100
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barWidth-filled))
}

func renderTrends(v dashboard.TrendsView) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📈 Trend Monitor") + "\n")

	cards := make([]string, 0, len(v.Metrics))
	for _, m := range v.Metrics {
		change := lipgloss.NewStyle().Foreground(lipgloss.Color(m.Change.Color())).
			Render(m.Change.Arrow() + " " + m.Change.Value)
		cards = append(cards, cardStyle.Render(
			labelStyle.Render(m.Label)+"\n"+
				lipgloss.NewStyle().Bold(true).Render(m.Value)+"\n"+
				change+" "+dimStyle.Render(m.Change.Label)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n")

	b.WriteString(sectionStyle.Render("Trending Topics") + "\n")
	t := newTable("#", "Topic", "Volume", "Sentiment", "Velocity", "Peak")
	for _, r := range v.Rows {
		sentiment := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Class.Color)).Render(r.Indicator)
		t.Row(strconv.Itoa(r.Rank), r.Topic, strconv.Itoa(r.Volume), sentiment, r.Velocity, r.PeakTime)
	}
	b.WriteString(t.Render() + "\n")

	b.WriteString(sectionStyle.Render(v.Chart.Title) + "\n")
	for i, label := range v.Chart.Labels {
		fmt.Fprintf(&b, "%-34s W %s %3d%%  M %s %3d%%\n", label,
			bar(v.Chart.Women[i], display.Palette.WomenBlue), v.Chart.Women[i],
			bar(v.Chart.Men[i], display.Palette.MenRed), v.Chart.Men[i])
	}

	b.WriteString(sectionStyle.Render("Top Keywords") + "\n")
	b.WriteString(labelStyle.Render("Women: ") + joinKeywords(v.WomenKeywords) + "\n")
	b.WriteString(labelStyle.Render("Men:   ") + joinKeywords(v.MenKeywords) + "\n")

	for _, in := range v.Insights {
		b.WriteString(sectionStyle.Render(in.Title) + "\n" + in.Body + "\n")
	}
	return b.String()
}

func joinKeywords(ks []dashboard.RankedKeyword) string {
	parts := make([]string, 0, len(ks))
	for _, k := range ks {
		parts = append(parts, fmt.Sprintf("%d. %s", k.Rank, k.Keyword))
	}
	return strings.Join(parts, "  ")
}

func renderAttraction(v dashboard.AttractionView) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🔬 Research Insights") + "\n")

	b.WriteString(sectionStyle.Render("Physical Factors") + "\n")
	t := newTable("Factor", "Women", "Men", "Key Finding")
	for _, f := range v.PhysicalFactors {
		t.Row(f.Factor, f.WomenPreference, f.MenPreference, f.KeyFinding)
	}
	b.WriteString(t.Render() + "\n")

	b.WriteString(sectionStyle.Render("Behavioral Traits") + "\n")
	for _, tr := range v.Traits {
		pct := int(tr.Score / v.Radar.Max * 100)
		fmt.Fprintf(&b, "%-28s %s %s\n", tr.Trait, bar(pct, display.Palette.GreenPrimary), tr.Badge)
		if tr.HowToDemonstrate != "" {
			b.WriteString("  " + dimStyle.Render(tr.HowToDemonstrate) + "\n")
		}
	}

	b.WriteString(sectionStyle.Render("Key Insights") + "\n")
	for _, in := range v.KeyInsights {
		b.WriteString(cardStyle.Render(lipgloss.NewStyle().Bold(true).Render(in.Insight)+"\n"+
			in.Description+"\n"+dimStyle.Render(in.Implication)) + "\n")
	}
	return b.String()
}

func renderSkills(v dashboard.SkillsView) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("💬 Communication Tips") + "\n")

	for _, tip := range v.Tips {
		fmt.Fprintf(&b, "%s  %s  %s\n",
			lipgloss.NewStyle().Bold(true).Render(tip.Category),
			tip.Effectiveness,
			bar(tip.Bar.Favorable, display.Palette.GreenPrimary))
		b.WriteString("  " + okStyle.Render("✓ ") + tip.Do + "\n")
		b.WriteString("  " + errorStyle.Render("✗ ") + tip.Dont + "\n")
	}

	b.WriteString(sectionStyle.Render("Body Language") + "\n")
	t := newTable("Signal", "Meaning", "How to Use")
	for _, s := range v.BodyLanguage {
		t.Row(s.Signal, s.Meaning, s.HowToUse)
	}
	b.WriteString(t.Render() + "\n")

	b.WriteString(sectionStyle.Render("Conversation Starters") + "\n")
	cols := make([]string, 0, len(v.Starters))
	for _, col := range v.Starters {
		lines := []string{lipgloss.NewStyle().Foreground(lipgloss.Color(col.Color)).Bold(true).Render(col.Icon + " " + col.Title)}
		for _, item := range col.Items {
			lines = append(lines, "• "+item)
		}
		cols = append(cols, cardStyle.Width(40).Render(strings.Join(lines, "\n")))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n")

	b.WriteString(sectionStyle.Render("Common Mistakes") + "\n")
	for _, m := range v.CommonMistakes {
		b.WriteString(errorStyle.Render("✗ "+m.Mistake) + "\n  " + dimStyle.Render(m.WhyItFails) + "\n  " + okStyle.Render("→ ") + m.Fix + "\n")
	}
	return b.String()
}
