// Package content reads the curated fixture files the dashboard displays.
//
// The content is static: three files (mock_trends, attraction_research,
// social_skills) in one directory, each JSON or YAML. Files are read from
// disk on every request so an edited fixture shows up on the next page
// load without a restart.
package content

// Dataset names a fixture file by its base name.
type Dataset string

const (
	DatasetTrends     Dataset = "mock_trends"
	DatasetAttraction Dataset = "attraction_research"
	DatasetSkills     Dataset = "social_skills"
)

// Datasets lists every known dataset.
var Datasets = []Dataset{DatasetTrends, DatasetAttraction, DatasetSkills}

// Trends is the trend-monitor fixture.
type Trends struct {
	EngagementStats EngagementStats `json:"engagement_stats" yaml:"engagement_stats"`
	Trends          []Trend         `json:"trends" yaml:"trends"`
	TopKeywords     Keywords        `json:"top_keywords" yaml:"top_keywords"`
}

// EngagementStats are the headline numbers above the trend table.
type EngagementStats struct {
	TotalDiscussions int     `json:"total_discussions" yaml:"total_discussions"`
	WeeklyGrowth     int     `json:"weekly_growth" yaml:"weekly_growth"`
	AvgSentiment     float64 `json:"avg_sentiment" yaml:"avg_sentiment"`
	PeakHours        string  `json:"peak_hours" yaml:"peak_hours"`
}

// Trend is one discussion topic.
type Trend struct {
	Topic         string  `json:"topic" yaml:"topic"`
	Volume        int     `json:"volume" yaml:"volume"`
	Sentiment     float64 `json:"sentiment" yaml:"sentiment"`
	Velocity      float64 `json:"velocity" yaml:"velocity"`
	PeakTime      string  `json:"peak_time" yaml:"peak_time"`
	WomenInterest int     `json:"women_interest" yaml:"women_interest"`
	MenInterest   int     `json:"men_interest" yaml:"men_interest"`
}

// Keywords are ranked keyword lists by audience.
type Keywords struct {
	Women []string `json:"women" yaml:"women"`
	Men   []string `json:"men" yaml:"men"`
}

// AttractionResearch is the research-insights fixture.
type AttractionResearch struct {
	PhysicalFactors   []PhysicalFactor   `json:"physical_factors" yaml:"physical_factors"`
	BehavioralFactors []BehavioralFactor `json:"behavioral_factors" yaml:"behavioral_factors"`
	KeyInsights       []KeyInsight       `json:"key_insights" yaml:"key_insights"`
}

type PhysicalFactor struct {
	Factor          string `json:"factor" yaml:"factor"`
	WomenPreference string `json:"women_preference" yaml:"women_preference"`
	MenPreference   string `json:"men_preference" yaml:"men_preference"`
	Research        string `json:"research" yaml:"research"`
	KeyFinding      string `json:"key_finding" yaml:"key_finding"`
	PracticalTip    string `json:"practical_tip" yaml:"practical_tip"`
}

type BehavioralFactor struct {
	Trait               string  `json:"trait" yaml:"trait"`
	AttractivenessScore float64 `json:"attractiveness_score" yaml:"attractiveness_score"`
	HowToDemonstrate    string  `json:"how_to_demonstrate" yaml:"how_to_demonstrate"`
	GenderDifference    string  `json:"gender_difference" yaml:"gender_difference"`
}

type KeyInsight struct {
	Insight     string `json:"insight" yaml:"insight"`
	Description string `json:"description" yaml:"description"`
	Implication string `json:"implication" yaml:"implication"`
}

// SocialSkills is the communication-tips fixture.
type SocialSkills struct {
	CommunicationTips    []CommunicationTip   `json:"communication_tips" yaml:"communication_tips"`
	BodyLanguage         []BodyLanguageSignal `json:"body_language" yaml:"body_language"`
	ConversationStarters ConversationStarters `json:"conversation_starters" yaml:"conversation_starters"`
	CommonMistakes       []CommonMistake      `json:"common_mistakes" yaml:"common_mistakes"`
}

type CommunicationTip struct {
	Category      string  `json:"category" yaml:"category"`
	Effectiveness float64 `json:"effectiveness" yaml:"effectiveness"`
	Context       string  `json:"context" yaml:"context"`
	Do            string  `json:"do" yaml:"do"`
	Dont          string  `json:"dont" yaml:"dont"`
	ExampleGood   string  `json:"example_good" yaml:"example_good"`
	ExampleBad    string  `json:"example_bad" yaml:"example_bad"`
}

type BodyLanguageSignal struct {
	Signal        string `json:"signal" yaml:"signal"`
	Meaning       string `json:"meaning" yaml:"meaning"`
	HowToUse      string `json:"how_to_use" yaml:"how_to_use"`
	CommonMistake string `json:"common_mistake" yaml:"common_mistake"`
}

type ConversationStarters struct {
	Situational   []string `json:"situational" yaml:"situational"`
	InterestBased []string `json:"interest_based" yaml:"interest_based"`
	Direct        []string `json:"direct" yaml:"direct"`
}

type CommonMistake struct {
	Mistake    string `json:"mistake" yaml:"mistake"`
	WhyItFails string `json:"why_it_fails" yaml:"why_it_fails"`
	Fix        string `json:"fix" yaml:"fix"`
}
