package entity

import (
	"fmt"
	"strings"
)

// DialogueSectionHeading opens a session's human-readable region inside the
// host note. The persistence codec uses it to delimit session markdown.
const DialogueSectionHeading = "## 🤔 Socratic Dialogue"

// ToMarkdown renders the fixed human-readable transcript: heading, creation
// time, intensity, then one block per question (type badge, text, response if
// recorded) separated by horizontal rules, followed by insight subsections
// when an insight bundle is present.
func (s *DialogueSession) ToMarkdown() string {
	var b strings.Builder

	b.WriteString(DialogueSectionHeading + "\n\n")
	b.WriteString(fmt.Sprintf("*Started: %s*\n", s.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("*Intensity: %s %s*\n", s.Intensity.Icon(), s.Intensity.Label()))

	for _, ex := range s.History() {
		b.WriteString("\n---\n\n")
		b.WriteString(fmt.Sprintf("**%s %s Question**\n\n", ex.Question.Type.Icon(), ex.Question.Type.Label()))
		b.WriteString(ex.Question.Content + "\n")
		if ex.Response != nil {
			b.WriteString("\n**Response:**\n\n")
			b.WriteString(ex.Response.Content + "\n")
		}
	}

	if s.Insights != nil {
		b.WriteString(insightsMarkdown(s.Insights))
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func insightsMarkdown(in *ExtractedInsights) string {
	var b strings.Builder

	b.WriteString("\n---\n\n### ✨ Key Insights\n")
	byCategory := map[InsightCategory][]Insight{}
	for _, i := range in.Insights {
		byCategory[i.Category] = append(byCategory[i.Category], i)
	}
	for _, cat := range []InsightCategory{
		InsightCategoryDiscovery,
		InsightCategoryPerspective,
		InsightCategoryQuestion,
		InsightCategoryConnection,
	} {
		items := byCategory[cat]
		if len(items) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n**%s %s**\n\n", cat.Icon(), cat))
		for _, i := range items {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", i.Title, i.Description))
		}
	}

	b.WriteString("\n### 📝 Suggested Note Topics\n\n")
	for _, t := range in.NoteTopics {
		b.WriteString(fmt.Sprintf("- **%s**: %s\n", t.Title, t.Description))
		if len(t.SuggestedTags) > 0 {
			tags := make([]string, 0, len(t.SuggestedTags))
			for _, tag := range t.SuggestedTags {
				tags = append(tags, "#"+strings.TrimPrefix(tag, "#"))
			}
			b.WriteString(fmt.Sprintf("  Tags: %s\n", strings.Join(tags, " ")))
		}
	}

	b.WriteString("\n### ❓ Open Questions\n\n")
	for _, q := range in.UnansweredQuestions {
		b.WriteString("- " + q + "\n")
	}

	b.WriteString("\n### 🔧 Suggested Enhancements\n\n")
	for _, e := range in.SuggestedEnhancements {
		b.WriteString("- " + e + "\n")
	}

	return b.String()
}
