package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionData is the plain serialization record of a DialogueSession. It is
// the shape embedded in note documents, so field names are part of the
// on-disk contract.
type SessionData struct {
	Id          string                  `json:"id"`
	NoteId      string                  `json:"note_id"`
	NotePath    string                  `json:"note_path"`
	NoteContext string                  `json:"note_context,omitempty"`
	Questions   []QuestionData          `json:"questions"`
	Responses   map[string]ResponseData `json:"responses"`
	Intensity   string                  `json:"intensity"`
	Insights    *InsightsData           `json:"extracted_insights,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

type QuestionData struct {
	Id        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ResponseData struct {
	QuestionId string    `json:"question_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type InsightsData struct {
	Insights              []InsightData   `json:"insights"`
	NoteTopics            []NoteTopicData `json:"note_topics"`
	UnansweredQuestions   []string        `json:"unanswered_questions"`
	SuggestedEnhancements []string        `json:"suggested_enhancements"`
	ExtractedAt           time.Time       `json:"extracted_at"`
}

type InsightData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type NoteTopicData struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	SuggestedTags []string `json:"suggested_tags"`
}

// ExportOptions controls ToData. ExcludeNoteContext is set for the durable
// on-disk form so the note does not embed a full copy of its own content.
type ExportOptions struct {
	ExcludeNoteContext bool
}

// ToData exports the session as a plain record.
func (s *DialogueSession) ToData(opts ExportOptions) SessionData {
	data := SessionData{
		Id:        s.Id,
		NoteId:    s.NoteId.String(),
		NotePath:  s.NotePath,
		Questions: make([]QuestionData, 0, len(s.Questions)),
		Responses: make(map[string]ResponseData, len(s.Responses)),
		Intensity: s.Intensity.String(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if !opts.ExcludeNoteContext {
		data.NoteContext = s.NoteContext
	}
	for _, q := range s.Questions {
		data.Questions = append(data.Questions, QuestionData{
			Id:        q.Id,
			Type:      q.Type.String(),
			Content:   q.Content,
			CreatedAt: q.CreatedAt,
		})
	}
	for id, r := range s.Responses {
		data.Responses[id] = ResponseData{
			QuestionId: r.QuestionId,
			Content:    r.Content,
			CreatedAt:  r.CreatedAt,
		}
	}
	if s.Insights != nil {
		data.Insights = insightsToData(s.Insights)
	}
	return data
}

// SessionFromData reconstructs a session from its serialized record. A
// non-empty noteContextOverride wins over any context embedded in the data:
// at load time the current note content is the authoritative context, not
// whatever was saved. Question order, response associations, intensity and
// the insight bundle are restored exactly. Responses pointing at questions
// that are not in the list are dropped to keep the aggregate invariant.
func SessionFromData(data SessionData, noteContextOverride string) (*DialogueSession, error) {
	if data.Id == "" {
		return nil, fmt.Errorf("session data has no id")
	}
	noteId, err := uuid.Parse(data.NoteId)
	if err != nil {
		return nil, fmt.Errorf("session %s: bad note id: %w", data.Id, err)
	}
	intensity, err := ParseIntensityLevel(data.Intensity)
	if err != nil {
		intensity = DefaultIntensity
	}

	session := &DialogueSession{
		Id:        data.Id,
		NoteId:    noteId,
		NotePath:  data.NotePath,
		Questions: make([]Question, 0, len(data.Questions)),
		Responses: make(map[string]DialogueResponse, len(data.Responses)),
		Intensity: intensity,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}

	if noteContextOverride != "" {
		session.NoteContext = noteContextOverride
	} else {
		session.NoteContext = data.NoteContext
	}

	for _, qd := range data.Questions {
		qType, err := ParseQuestionType(qd.Type)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", data.Id, err)
		}
		session.Questions = append(session.Questions, Question{
			Id:        qd.Id,
			Type:      qType,
			Content:   qd.Content,
			CreatedAt: qd.CreatedAt,
		})
	}

	for id, rd := range data.Responses {
		if !session.hasQuestion(id) {
			continue
		}
		session.Responses[id] = DialogueResponse{
			QuestionId: rd.QuestionId,
			Content:    rd.Content,
			CreatedAt:  rd.CreatedAt,
		}
	}

	if data.Insights != nil {
		session.Insights = insightsFromData(data.Insights)
	}

	return session, nil
}

func insightsToData(in *ExtractedInsights) *InsightsData {
	out := &InsightsData{
		Insights:              make([]InsightData, 0, len(in.Insights)),
		NoteTopics:            make([]NoteTopicData, 0, len(in.NoteTopics)),
		UnansweredQuestions:   append([]string{}, in.UnansweredQuestions...),
		SuggestedEnhancements: append([]string{}, in.SuggestedEnhancements...),
		ExtractedAt:           in.ExtractedAt,
	}
	for _, i := range in.Insights {
		out.Insights = append(out.Insights, InsightData{
			Title:       i.Title,
			Description: i.Description,
			Category:    string(i.Category),
		})
	}
	for _, t := range in.NoteTopics {
		out.NoteTopics = append(out.NoteTopics, NoteTopicData{
			Title:         t.Title,
			Description:   t.Description,
			SuggestedTags: append([]string{}, t.SuggestedTags...),
		})
	}
	return out
}

func insightsFromData(in *InsightsData) *ExtractedInsights {
	out := &ExtractedInsights{
		Insights:              make([]Insight, 0, len(in.Insights)),
		NoteTopics:            make([]NoteTopic, 0, len(in.NoteTopics)),
		UnansweredQuestions:   append([]string{}, in.UnansweredQuestions...),
		SuggestedEnhancements: append([]string{}, in.SuggestedEnhancements...),
		ExtractedAt:           in.ExtractedAt,
	}
	for _, i := range in.Insights {
		out.Insights = append(out.Insights, Insight{
			Title:       i.Title,
			Description: i.Description,
			Category:    ParseInsightCategory(i.Category),
		})
	}
	for _, t := range in.NoteTopics {
		out.NoteTopics = append(out.NoteTopics, NoteTopic{
			Title:         t.Title,
			Description:   t.Description,
			SuggestedTags: append([]string{}, t.SuggestedTags...),
		})
	}
	return out
}
