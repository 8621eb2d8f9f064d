package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateQuestionsRequest struct {
	NoteId        uuid.UUID
	QuestionTypes []string `json:"question_types" validate:"required,min=1,dive,oneof=ASSUMPTION PERSPECTIVE EXPANSION CLARIFICATION IMPLICATION"`
	Intensity     string   `json:"intensity" validate:"omitempty,oneof=GENTLE MODERATE CHALLENGING"`
	MaxQuestions  int      `json:"max_questions" validate:"omitempty,min=1,max=10"`
}

type RecordResponseRequest struct {
	NoteId     uuid.UUID
	SessionId  string `json:"session_id"`
	QuestionId string `json:"question_id" validate:"required"`
	Response   string `json:"response" validate:"required"`
}

type ContinueDialogueRequest struct {
	NoteId        uuid.UUID
	SessionId     string   `json:"session_id"`
	QuestionTypes []string `json:"question_types" validate:"omitempty,dive,oneof=ASSUMPTION PERSPECTIVE EXPANSION CLARIFICATION IMPLICATION"`
	MaxQuestions  int      `json:"max_questions" validate:"omitempty,min=1,max=10"`
}

type ExtractInsightsRequest struct {
	NoteId    uuid.UUID
	SessionId string `json:"session_id"`
}

type QuestionResponse struct {
	Id        string    `json:"id"`
	Type      string    `json:"type"`
	TypeLabel string    `json:"type_label"`
	TypeIcon  string    `json:"type_icon"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ExchangeResponse struct {
	Question QuestionResponse `json:"question"`
	Response *string          `json:"response,omitempty"`
}

type InsightItemResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type NoteTopicResponse struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	SuggestedTags []string `json:"suggested_tags"`
}

type InsightsResponse struct {
	Insights              []InsightItemResponse `json:"insights"`
	NoteTopics            []NoteTopicResponse   `json:"note_topics"`
	UnansweredQuestions   []string              `json:"unanswered_questions"`
	SuggestedEnhancements []string              `json:"suggested_enhancements"`
}

type DialogueSessionResponse struct {
	Id            string             `json:"id"`
	NoteId        uuid.UUID          `json:"note_id"`
	NotePath      string             `json:"note_path"`
	Intensity     string             `json:"intensity"`
	Exchanges     []ExchangeResponse `json:"exchanges"`
	Insights      *InsightsResponse  `json:"insights,omitempty"`
	AnsweredCount int                `json:"answered_count"`
	TotalCount    int                `json:"total_count"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type DialogueHistoryResponse struct {
	Sessions []DialogueSessionResponse `json:"sessions"`
}

type ActivityQueryRequest struct {
	SessionId string `query:"session_id"`
	Kind      string `query:"kind" validate:"omitempty,oneof=SESSION_STARTED RESPONSE_RECORDED INSIGHTS_EXTRACTED SESSION_DELETED"`
}

type DialogueActivityResponse struct {
	Id        uuid.UUID              `json:"id"`
	NoteId    uuid.UUID              `json:"note_id"`
	SessionId string                 `json:"session_id"`
	Kind      string                 `json:"kind"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// PublishDialogueActivityMessage is the payload sent to the in-process bus
// after a dialogue mutation; the consumer turns it into an audit row and a
// NATS event.
type PublishDialogueActivityMessage struct {
	NoteId    uuid.UUID              `json:"note_id"`
	SessionId string                 `json:"session_id"`
	Kind      string                 `json:"kind"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

type QuestionTypeInfoResponse struct {
	Type       string `json:"type"`
	Label      string `json:"label"`
	Icon       string `json:"icon"`
	PromptHint string `json:"prompt_hint"`
}

type IntensityInfoResponse struct {
	Level string `json:"level"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}
