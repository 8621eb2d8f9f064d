package parser

import (
	"encoding/json"
	"strings"
	"time"

	"socratic-notes-be/internal/entity"
)

type insightsPayload struct {
	Insights []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
	} `json:"insights"`
	NoteTopics []struct {
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		SuggestedTags []string `json:"suggested_tags"`
	} `json:"note_topics"`
	UnansweredQuestions   []string `json:"unanswered_questions"`
	SuggestedEnhancements []string `json:"suggested_enhancements"`
}

// ParseInsights turns raw LLM output into an insight bundle. Unlike question
// parsing there is no heuristic fallback and no per-entry rejection: missing
// or mangled fields default (empty strings, default category) instead of
// aborting. A completely unusable response yields an empty bundle, never an
// error — the caller decides whether empty means failure.
func ParseInsights(raw string) *entity.ExtractedInsights {
	bundle := &entity.ExtractedInsights{
		Insights:              []entity.Insight{},
		NoteTopics:            []entity.NoteTopic{},
		UnansweredQuestions:   []string{},
		SuggestedEnhancements: []string{},
		ExtractedAt:           time.Now(),
	}

	payload, ok := ExtractFencedJSON(raw)
	if !ok {
		return bundle
	}

	var parsed insightsPayload
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return bundle
	}

	for _, in := range parsed.Insights {
		title := strings.TrimSpace(in.Title)
		desc := strings.TrimSpace(in.Description)
		if title == "" && desc == "" {
			continue
		}
		bundle.Insights = append(bundle.Insights, entity.Insight{
			Title:       title,
			Description: desc,
			Category:    entity.ParseInsightCategory(in.Category),
		})
	}

	for _, t := range parsed.NoteTopics {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			continue
		}
		topic := entity.NoteTopic{
			Title:         title,
			Description:   strings.TrimSpace(t.Description),
			SuggestedTags: []string{},
		}
		for _, tag := range t.SuggestedTags {
			if tag = strings.TrimSpace(tag); tag != "" {
				topic.SuggestedTags = append(topic.SuggestedTags, tag)
			}
		}
		bundle.NoteTopics = append(bundle.NoteTopics, topic)
	}

	for _, q := range parsed.UnansweredQuestions {
		if q = strings.TrimSpace(q); q != "" {
			bundle.UnansweredQuestions = append(bundle.UnansweredQuestions, q)
		}
	}
	for _, e := range parsed.SuggestedEnhancements {
		if e = strings.TrimSpace(e); e != "" {
			bundle.SuggestedEnhancements = append(bundle.SuggestedEnhancements, e)
		}
	}

	return bundle
}
