package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"socratic-notes-be/internal/entity"
)

// Options tunes the heuristic fallback. The strict JSON path ignores it.
type Options struct {
	// MinLength discards fallback candidates whose cleaned content is
	// shorter than this many runes. Filters bullet noise like "Why?".
	MinLength int
}

func DefaultOptions() Options {
	return Options{MinLength: 10}
}

type questionsPayload struct {
	Questions []struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	} `json:"questions"`
}

// ParseQuestions turns raw LLM output into validated questions. It never
// fails: a strict fenced-JSON parse is attempted first, and any problem there
// (no fence, malformed JSON, an entry with an unknown type or empty content)
// drops the whole strict result and falls through to line-scan heuristics.
// An empty slice means the response was unusable.
func ParseQuestions(raw string) []entity.Question {
	return ParseQuestionsWith(raw, DefaultOptions())
}

func ParseQuestionsWith(raw string, opts Options) []entity.Question {
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultOptions().MinLength
	}
	if questions, ok := parseStrict(raw); ok {
		return questions
	}
	return parseHeuristic(raw, opts)
}

func parseStrict(raw string) ([]entity.Question, bool) {
	payload, ok := ExtractFencedJSON(raw)
	if !ok {
		return nil, false
	}

	var parsed questionsPayload
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, false
	}
	if len(parsed.Questions) == 0 {
		return nil, false
	}

	questions := make([]entity.Question, 0, len(parsed.Questions))
	for _, entry := range parsed.Questions {
		qType, err := entity.ParseQuestionType(entry.Type)
		if err != nil {
			return nil, false
		}
		q, err := entity.NewQuestion(qType, entry.Content)
		if err != nil {
			return nil, false
		}
		questions = append(questions, q)
	}
	return questions, true
}

// --- Heuristic fallback ---

// FallbackType is used when no hint in the line matches a question type.
const FallbackType = entity.QuestionTypeClarification

// typeHint maps keyword/icon fragments to a question type. Checked in order;
// the list is deliberately loose and not load-bearing — the strict JSON path
// is the real contract.
type typeHint struct {
	Type  entity.QuestionType
	Hints []string
}

var typeHints = []typeHint{
	{entity.QuestionTypeAssumption, []string{"💭", "assum", "suppose", "taken for granted"}},
	{entity.QuestionTypePerspective, []string{"👁", "perspective", "viewpoint", "point of view", "someone else"}},
	{entity.QuestionTypeExpansion, []string{"🌱", "expand", "further", "build on", "what if"}},
	{entity.QuestionTypeClarification, []string{"🔍", "clarif", "mean by", "define", "specifically"}},
	{entity.QuestionTypeImplication, []string{"⚡", "implic", "consequence", "lead to", "follow from"}},
}

var (
	bulletPrefixRe = regexp.MustCompile(`^\s*(?:[-*+>]|\d+[.)])\s*`)
	leadingJunkRe  = regexp.MustCompile(`^[^\p{L}\p{N}"']+`)
)

func parseHeuristic(raw string, opts Options) []entity.Question {
	questions := make([]entity.Question, 0)
	for _, line := range strings.Split(raw, "\n") {
		if !strings.Contains(line, "?") {
			continue
		}

		qType := inferType(line)
		cleaned := cleanLine(line)
		if len([]rune(cleaned)) < opts.MinLength {
			continue
		}

		q, err := entity.NewQuestion(qType, cleaned)
		if err != nil {
			continue
		}
		questions = append(questions, q)
	}
	return questions
}

func inferType(line string) entity.QuestionType {
	lower := strings.ToLower(line)
	for _, th := range typeHints {
		for _, hint := range th.Hints {
			if strings.Contains(lower, hint) {
				return th.Type
			}
		}
	}
	return FallbackType
}

func cleanLine(line string) string {
	cleaned := bulletPrefixRe.ReplaceAllString(line, "")
	cleaned = strings.Trim(cleaned, "*_ \t")
	cleaned = leadingJunkRe.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
