package entity

import (
	"errors"
	"fmt"
)

// QuestionType is the closed set of Socratic question categories.
type QuestionType string

const (
	QuestionTypeAssumption    QuestionType = "ASSUMPTION"
	QuestionTypePerspective   QuestionType = "PERSPECTIVE"
	QuestionTypeExpansion     QuestionType = "EXPANSION"
	QuestionTypeClarification QuestionType = "CLARIFICATION"
	QuestionTypeImplication   QuestionType = "IMPLICATION"
)

var ErrInvalidQuestionType = errors.New("invalid question type")

type questionTypeMeta struct {
	Label      string
	Icon       string
	PromptHint string
}

// Order here is the display order used by clients when enumerating types.
var questionTypeOrder = []QuestionType{
	QuestionTypeAssumption,
	QuestionTypePerspective,
	QuestionTypeExpansion,
	QuestionTypeClarification,
	QuestionTypeImplication,
}

var questionTypeMetadata = map[QuestionType]questionTypeMeta{
	QuestionTypeAssumption: {
		Label:      "Assumption",
		Icon:       "💭",
		PromptHint: "challenge the hidden assumptions behind the note",
	},
	QuestionTypePerspective: {
		Label:      "Perspective",
		Icon:       "👁️",
		PromptHint: "offer an alternative viewpoint on the topic",
	},
	QuestionTypeExpansion: {
		Label:      "Expansion",
		Icon:       "🌱",
		PromptHint: "push the idea further or into adjacent territory",
	},
	QuestionTypeClarification: {
		Label:      "Clarification",
		Icon:       "🔍",
		PromptHint: "pin down vague or ambiguous statements",
	},
	QuestionTypeImplication: {
		Label:      "Implication",
		Icon:       "⚡",
		PromptHint: "surface consequences that follow from the idea",
	},
}

// ParseQuestionType validates a raw value against the closed set.
func ParseQuestionType(value string) (QuestionType, error) {
	t := QuestionType(value)
	if _, ok := questionTypeMetadata[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidQuestionType, value)
	}
	return t, nil
}

// AllQuestionTypes returns the complete set in display order.
func AllQuestionTypes() []QuestionType {
	out := make([]QuestionType, len(questionTypeOrder))
	copy(out, questionTypeOrder)
	return out
}

func (t QuestionType) String() string {
	return string(t)
}

func (t QuestionType) Label() string {
	return questionTypeMetadata[t].Label
}

func (t QuestionType) Icon() string {
	return questionTypeMetadata[t].Icon
}

func (t QuestionType) PromptHint() string {
	return questionTypeMetadata[t].PromptHint
}
