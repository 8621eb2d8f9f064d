package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrQuestionNotFound = errors.New("question not found in session")
	ErrEmptyResponse    = errors.New("response content is empty")
)

// DialogueResponse is the user's answer to one question. Recording a second
// response for the same question overwrites the first.
type DialogueResponse struct {
	QuestionId string
	Content    string
	CreatedAt  time.Time
}

// Exchange pairs a question with its response, if any.
type Exchange struct {
	Question Question
	Response *DialogueResponse
}

// DialogueSession is the aggregate root of one Socratic dialogue on a note.
// It owns its questions and responses; NoteContext is a borrowed view of the
// host note's content at creation time and is never persisted.
type DialogueSession struct {
	Id          string
	NoteId      uuid.UUID
	NotePath    string
	NoteContext string
	Questions   []Question
	Responses   map[string]DialogueResponse
	Intensity   IntensityLevel
	Insights    *ExtractedInsights
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewDialogueSession(noteId uuid.UUID, notePath, noteContext string, intensity IntensityLevel) *DialogueSession {
	if _, ok := intensityMetadata[intensity]; !ok {
		intensity = DefaultIntensity
	}
	now := time.Now()
	return &DialogueSession{
		Id:          NewSessionID(),
		NoteId:      noteId,
		NotePath:    notePath,
		NoteContext: noteContext,
		Questions:   []Question{},
		Responses:   map[string]DialogueResponse{},
		Intensity:   intensity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddQuestions appends questions in order and bumps UpdatedAt.
func (s *DialogueSession) AddQuestions(questions []Question) {
	s.Questions = append(s.Questions, questions...)
	s.touch()
}

// AddResponse records (or re-records) the answer to a question. The question
// id must reference a question already in the session.
func (s *DialogueSession) AddResponse(questionId, content string) error {
	if !s.hasQuestion(questionId) {
		return fmt.Errorf("%w: %s", ErrQuestionNotFound, questionId)
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ErrEmptyResponse
	}
	s.Responses[questionId] = DialogueResponse{
		QuestionId: questionId,
		Content:    trimmed,
		CreatedAt:  time.Now(),
	}
	s.touch()
	return nil
}

// SetExtractedInsights replaces any previous bundle.
func (s *DialogueSession) SetExtractedInsights(insights *ExtractedInsights) {
	s.Insights = insights
	s.touch()
}

// SetIntensity affects only future prompt construction, not existing data.
func (s *DialogueSession) SetIntensity(level IntensityLevel) {
	s.Intensity = level
	s.touch()
}

// History returns one exchange per question, in insertion order. Downstream
// prompt builders rely on this order to present the conversation so far.
func (s *DialogueSession) History() []Exchange {
	history := make([]Exchange, 0, len(s.Questions))
	for _, q := range s.Questions {
		ex := Exchange{Question: q}
		if r, ok := s.Responses[q.Id]; ok {
			resp := r
			ex.Response = &resp
		}
		history = append(history, ex)
	}
	return history
}

// UnansweredQuestions filters the question list, preserving insertion order.
func (s *DialogueSession) UnansweredQuestions() []Question {
	out := make([]Question, 0)
	for _, q := range s.Questions {
		if _, ok := s.Responses[q.Id]; !ok {
			out = append(out, q)
		}
	}
	return out
}

// AnsweredQuestions filters the question list, preserving insertion order.
func (s *DialogueSession) AnsweredQuestions() []Question {
	out := make([]Question, 0)
	for _, q := range s.Questions {
		if _, ok := s.Responses[q.Id]; ok {
			out = append(out, q)
		}
	}
	return out
}

// LastExchange returns the most recently answered question by its position in
// the question list, not by response timestamp. Nil when nothing is answered.
func (s *DialogueSession) LastExchange() *Exchange {
	for i := len(s.Questions) - 1; i >= 0; i-- {
		q := s.Questions[i]
		if r, ok := s.Responses[q.Id]; ok {
			resp := r
			return &Exchange{Question: q, Response: &resp}
		}
	}
	return nil
}

// IsFullyAnswered reports whether every question has a response.
func (s *DialogueSession) IsFullyAnswered() bool {
	return len(s.Questions) > 0 && len(s.AnsweredQuestions()) == len(s.Questions)
}

func (s *DialogueSession) hasQuestion(questionId string) bool {
	for _, q := range s.Questions {
		if q.Id == questionId {
			return true
		}
	}
	return false
}

func (s *DialogueSession) touch() {
	s.UpdatedAt = time.Now()
}
