package entity

import "time"

// InsightCategory classifies a single extracted insight.
type InsightCategory string

const (
	InsightCategoryDiscovery   InsightCategory = "discovery"
	InsightCategoryPerspective InsightCategory = "perspective"
	InsightCategoryQuestion    InsightCategory = "question"
	InsightCategoryConnection  InsightCategory = "connection"
)

// DefaultInsightCategory is applied when the model omits or mangles the field.
const DefaultInsightCategory = InsightCategoryDiscovery

var insightCategoryIcons = map[InsightCategory]string{
	InsightCategoryDiscovery:   "💡",
	InsightCategoryPerspective: "👁️",
	InsightCategoryQuestion:    "❓",
	InsightCategoryConnection:  "🔗",
}

// ParseInsightCategory is tolerant: unknown values fall back to the default
// instead of failing, matching the lenient insight-extraction contract.
func ParseInsightCategory(value string) InsightCategory {
	c := InsightCategory(value)
	if _, ok := insightCategoryIcons[c]; !ok {
		return DefaultInsightCategory
	}
	return c
}

func (c InsightCategory) Icon() string {
	return insightCategoryIcons[c]
}

type Insight struct {
	Title       string
	Description string
	Category    InsightCategory
}

type NoteTopic struct {
	Title         string
	Description   string
	SuggestedTags []string
}

// ExtractedInsights is the bundle produced by the insight-extraction flow.
// A session holds at most one; re-extraction replaces it wholesale.
type ExtractedInsights struct {
	Insights              []Insight
	NoteTopics            []NoteTopic
	UnansweredQuestions   []string
	SuggestedEnhancements []string
	ExtractedAt           time.Time
}

// IsEmpty reports whether the bundle carries neither insights nor topics.
// The unanswered-questions and enhancement lists may legitimately be empty.
func (e *ExtractedInsights) IsEmpty() bool {
	return e == nil || (len(e.Insights) == 0 && len(e.NoteTopics) == 0)
}
