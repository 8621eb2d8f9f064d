package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Question is a single generated Socratic question. Immutable after creation.
type Question struct {
	Id        string
	Type      QuestionType
	Content   string
	CreatedAt time.Time
}

// NewQuestion builds a question with a fresh id. Content must be non-empty.
func NewQuestion(qType QuestionType, content string) (Question, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Question{}, fmt.Errorf("question content is empty")
	}
	return Question{
		Id:        NewQuestionID(),
		Type:      qType,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

// NewQuestionID returns a unique time-sortable id, e.g. "q_1756130000000_3f2a91bc".
func NewQuestionID() string {
	return fmt.Sprintf("q_%d_%s", time.Now().UnixMilli(), randomSuffix())
}

// NewSessionID returns a unique id for a dialogue session.
func NewSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	return uuid.NewString()[:8]
}
