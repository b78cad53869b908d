// Package dashboard turns content records into the view models rendered by
// the HTML templates and returned by the JSON API.
//
// Builders are pure: they take a loaded record and return a value. All
// number and label formatting goes through internal/display.
package dashboard

import (
	"fmt"
	"math"
	"strconv"

	"github.com/fyrsmithlabs/socialintel/internal/content"
	"github.com/fyrsmithlabs/socialintel/internal/display"
)

// Trends tab layout.
const (
	MaxTrendRows      = 15
	GenderChartTopics = 8
	ChartLabelMaxLen  = 30
	SentimentBaseline = 0.25
	sentimentDecimals = 2
)

// MetricCard is one headline number with its change line.
type MetricCard struct {
	Label  string         `json:"label"`
	Value  string         `json:"value"`
	Change display.Change `json:"change"`
}

// TrendRow is one row of the ranked topic table.
type TrendRow struct {
	Rank          int               `json:"rank"`
	Topic         string            `json:"topic"`
	Volume        int               `json:"volume"`
	Score         float64           `json:"score"`
	Sentiment     string            `json:"sentiment"`
	Indicator     string            `json:"indicator"`
	Class         display.Sentiment `json:"class"`
	Velocity      string            `json:"velocity"`
	PeakTime      string            `json:"peak_time"`
	WomenInterest int               `json:"women_interest"`
	MenInterest   int               `json:"men_interest"`
}

// GenderChart is a grouped bar chart of interest by gender.
type GenderChart struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Women  []int    `json:"women"`
	Men    []int    `json:"men"`
}

// RankedKeyword is a keyword with its 1-based position.
type RankedKeyword struct {
	Rank    int    `json:"rank"`
	Keyword string `json:"keyword"`
}

// Insight is a short headline finding.
type Insight struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// TrendsView is the trend-monitor tab.
type TrendsView struct {
	Metrics       []MetricCard    `json:"metrics"`
	Rows          []TrendRow      `json:"rows"`
	Chart         GenderChart     `json:"chart"`
	WomenKeywords []RankedKeyword `json:"women_keywords"`
	MenKeywords   []RankedKeyword `json:"men_keywords"`
	Insights      []Insight       `json:"insights"`
}

// BuildTrends builds the trend-monitor view.
func BuildTrends(t *content.Trends) TrendsView {
	rows := trendRows(t.Trends)
	return TrendsView{
		Metrics:       trendMetrics(t.EngagementStats),
		Rows:          rows,
		Chart:         genderChart(rows),
		WomenKeywords: rankKeywords(t.TopKeywords.Women),
		MenKeywords:   rankKeywords(t.TopKeywords.Men),
		Insights:      trendInsights(rows),
	}
}

func trendMetrics(s content.EngagementStats) []MetricCard {
	avg := s.AvgSentiment
	return []MetricCard{
		{
			Label:  "Active Topics",
			Value:  strconv.Itoa(s.TotalDiscussions),
			Change: display.Change{Value: fmt.Sprintf("+%d", s.WeeklyGrowth), Label: "vs last week", Positive: true},
		},
		{
			Label: "Avg Sentiment",
			Value: display.FormatSigned(avg, sentimentDecimals),
			Change: display.Change{
				Value:    strconv.FormatFloat(math.Abs(avg-SentimentBaseline), 'f', sentimentDecimals, 64),
				Label:    "vs baseline",
				Positive: avg > SentimentBaseline,
			},
		},
		{
			Label:  "Peak Activity",
			Value:  s.PeakHours,
			Change: display.Change{Value: "2 hrs", Label: "window", Positive: true},
		},
		{
			Label:  "Engagement",
			Value:  "2.4K",
			Change: display.Change{Value: "+18%", Label: "comments", Positive: true},
		},
	}
}

func trendRows(trends []content.Trend) []TrendRow {
	n := len(trends)
	if n > MaxTrendRows {
		n = MaxTrendRows
	}
	rows := make([]TrendRow, 0, n)
	for i, tr := range trends[:n] {
		rows = append(rows, TrendRow{
			Rank:          i + 1,
			Topic:         tr.Topic,
			Volume:        tr.Volume,
			Score:         tr.Sentiment,
			Sentiment:     display.FormatSigned(tr.Sentiment, sentimentDecimals),
			Indicator:     display.Indicator(tr.Sentiment),
			Class:         display.ClassifySentiment(tr.Sentiment),
			Velocity:      display.FormatVelocity(tr.Velocity),
			PeakTime:      tr.PeakTime,
			WomenInterest: tr.WomenInterest,
			MenInterest:   tr.MenInterest,
		})
	}
	return rows
}

func genderChart(rows []TrendRow) GenderChart {
	n := len(rows)
	if n > GenderChartTopics {
		n = GenderChartTopics
	}
	chart := GenderChart{
		Title:  "Interest Level by Gender (%)",
		Labels: make([]string, 0, n),
		Women:  make([]int, 0, n),
		Men:    make([]int, 0, n),
	}
	for _, r := range rows[:n] {
		chart.Labels = append(chart.Labels, display.TruncateLabel(r.Topic, ChartLabelMaxLen))
		chart.Women = append(chart.Women, r.WomenInterest)
		chart.Men = append(chart.Men, r.MenInterest)
	}
	return chart
}

func rankKeywords(words []string) []RankedKeyword {
	out := make([]RankedKeyword, 0, len(words))
	for i, w := range words {
		out = append(out, RankedKeyword{Rank: i + 1, Keyword: w})
	}
	return out
}

// trendInsights derives the two headline findings from the ranked rows.
// Ties keep the earlier (higher-ranked) topic.
func trendInsights(rows []TrendRow) []Insight {
	if len(rows) == 0 {
		return nil
	}

	best, gap := rows[0], rows[0]
	for _, r := range rows[1:] {
		if r.Score > best.Score {
			best = r
		}
		if absInt(r.MenInterest-r.WomenInterest) > absInt(gap.MenInterest-gap.WomenInterest) {
			gap = r
		}
	}

	higher, lower := "male", "female"
	hi, lo := gap.MenInterest, gap.WomenInterest
	if gap.WomenInterest > gap.MenInterest {
		higher, lower = "female", "male"
		hi, lo = lo, hi
	}

	return []Insight{
		{
			Title: "Most Positive Sentiment",
			Body: fmt.Sprintf("%q shows the highest positive sentiment (%s).",
				best.Topic, best.Sentiment),
		},
		{
			Title: "Biggest Gender Gap",
			Body: fmt.Sprintf("%q shows %d%% %s interest vs %d%% %s.",
				gap.Topic, hi, higher, lo, lower),
		},
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
