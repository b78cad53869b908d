package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const trendsJSON = `{
  "engagement_stats": {"total_discussions": 87, "weekly_growth": 12, "avg_sentiment": 0.34, "peak_hours": "8-10 PM"},
  "trends": [
    {"topic": "Emotional intelligence in relationships", "volume": 2847, "sentiment": 0.85, "velocity": 23.5, "peak_time": "9 PM", "women_interest": 78, "men_interest": 52}
  ],
  "top_keywords": {"women": ["communication"], "men": ["confidence"]}
}`

const trendsYAML = `
engagement_stats:
  total_discussions: 87
  weekly_growth: 12
  avg_sentiment: 0.34
  peak_hours: 8-10 PM
trends:
  - topic: Emotional intelligence in relationships
    volume: 2847
    sentiment: 0.85
    velocity: 23.5
    peak_time: 9 PM
    women_interest: 78
    men_interest: 52
top_keywords:
  women: [communication]
  men: [confidence]
`

var wantTrends = &Trends{
	EngagementStats: EngagementStats{TotalDiscussions: 87, WeeklyGrowth: 12, AvgSentiment: 0.34, PeakHours: "8-10 PM"},
	Trends: []Trend{{
		Topic: "Emotional intelligence in relationships", Volume: 2847, Sentiment: 0.85,
		Velocity: 23.5, PeakTime: "9 PM", WomenInterest: 78, MenInterest: 52,
	}},
	TopKeywords: Keywords{Women: []string{"communication"}, Men: []string{"confidence"}},
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_TrendsJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mock_trends.json", trendsJSON)

	got, err := NewLoader(dir).Trends(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(wantTrends, got); diff != "" {
		t.Errorf("Trends() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_TrendsYAML(t *testing.T) {
	for _, ext := range []string{".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "mock_trends"+ext, trendsYAML)

			got, err := NewLoader(dir).Trends(context.Background())
			require.NoError(t, err)
			if diff := cmp.Diff(wantTrends, got); diff != "" {
				t.Errorf("Trends() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoader_JSONTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "mock_trends.json", trendsJSON)
	writeFile(t, dir, "mock_trends.yaml", "not: [valid")

	l := NewLoader(dir)
	path, err := l.Resolve(DatasetTrends)
	require.NoError(t, err)
	assert.Equal(t, jsonPath, path)

	_, err = l.Trends(context.Background())
	assert.NoError(t, err)
}

func TestLoader_NotFound(t *testing.T) {
	l := NewLoader(t.TempDir())

	_, err := l.Trends(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = l.Attraction(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.Skills(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoader_DirectoryIsNotAFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "mock_trends.json"), 0o755))

	_, err := NewLoader(dir).Trends(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoader_DecodeErrorNamesFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"malformed json", "social_skills.json", `{"communication_tips": [`},
		{"wrong type json", "social_skills.json", `{"communication_tips": "nope"}`},
		{"empty json", "social_skills.json", ``},
		{"trailing garbage json", "social_skills.json", `{"communication_tips": []}garbage`},
		{"second json value", "social_skills.json", `{"communication_tips": []} {}`},
		{"malformed yaml", "social_skills.yaml", "communication_tips: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tt.file, tt.content)

			_, err := NewLoader(dir).Skills(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), path)
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLoader_ReadsFreshOnEveryCall(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mock_trends.json", trendsJSON)
	l := NewLoader(dir)

	first, err := l.Trends(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 87, first.EngagementStats.TotalDiscussions)

	writeFile(t, dir, "mock_trends.json", `{"engagement_stats": {"total_discussions": 3}}`)

	second, err := l.Trends(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, second.EngagementStats.TotalDiscussions)
}

func TestLoader_Load(t *testing.T) {
	l := NewLoader(filepath.Join("..", "..", "data"))

	for _, d := range Datasets {
		v, err := l.Load(context.Background(), d)
		require.NoError(t, err, d)
		assert.NotNil(t, v)
	}

	_, err := l.Load(context.Background(), Dataset("unknown"))
	assert.Error(t, err)
}

func TestLoader_ValidateBundledData(t *testing.T) {
	l := NewLoader(filepath.Join("..", "..", "data"))
	require.NoError(t, l.Validate(context.Background()))

	trends, err := l.Trends(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(trends.Trends), 15)

	skills, err := l.Skills(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, skills.CommunicationTips)
	assert.NotEmpty(t, skills.ConversationStarters.Direct)

	research, err := l.Attraction(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, research.BehavioralFactors)
}

func TestLoader_ValidateJoinsErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mock_trends.json", trendsJSON)
	writeFile(t, dir, "social_skills.json", `{`)

	err := NewLoader(dir).Validate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "attraction_research")
	assert.Contains(t, err.Error(), "social_skills.json")
}

func TestLoader_ValidateRejectsTrailingData(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mock_trends.json", trendsJSON+"garbage")

	_, err := NewLoader(dir).Trends(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	err = NewLoader(dir).Validate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mock_trends.json")
}

func TestLoader_Spans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	dir := t.TempDir()
	path := writeFile(t, dir, "mock_trends.json", trendsJSON)
	l := NewLoader(dir, WithTracerProvider(tp))

	_, err := l.Trends(context.Background())
	require.NoError(t, err)
	_, err = l.Skills(context.Background())
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "content.load", ok.Name)
	assert.Contains(t, ok.Attributes, attribute.String("dataset", "mock_trends"))
	assert.Contains(t, ok.Attributes, attribute.String("path", path))
	assert.Equal(t, codes.Unset, ok.Status.Code)

	failed := spans[1]
	assert.Contains(t, failed.Attributes, attribute.String("dataset", "social_skills"))
	assert.Equal(t, codes.Error, failed.Status.Code)
}

func TestLoader_TooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mock_trends.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(maxFileSize+1))
	require.NoError(t, f.Close())

	_, err = NewLoader(dir).Trends(context.Background())
	assert.ErrorIs(t, err, ErrTooLarge)
}
