package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"socratic-notes-be/internal/constant"
	"socratic-notes-be/internal/dto"
	"socratic-notes-be/internal/entity"
	"socratic-notes-be/internal/pkg/logger"
	"socratic-notes-be/internal/repository/contract"
	"socratic-notes-be/internal/repository/specification"
	"socratic-notes-be/pkg/ai/parser"
	"socratic-notes-be/pkg/llm"

	"github.com/google/uuid"
)

var (
	ErrEmptyNoteContent     = errors.New("note content is empty")
	ErrLLMUnavailable       = errors.New("ai provider is not available")
	ErrLLMCallFailed        = errors.New("ai provider call failed")
	ErrNoQuestionsGenerated = errors.New("no questions could be parsed from the ai response")
	ErrNoAnsweredQuestions  = errors.New("session has no answered questions yet")
	ErrNoInsightsExtracted  = errors.New("no insights could be extracted from the dialogue")
)

// defaultContinueTypes are the follow-up types used when the caller does not
// pick any: deepen what was said rather than re-clarify it.
var defaultContinueTypes = []entity.QuestionType{
	entity.QuestionTypeAssumption,
	entity.QuestionTypeExpansion,
	entity.QuestionTypeImplication,
}

const (
	defaultMaxQuestions         = 3
	defaultContinueMaxQuestions = 2
)

type IDialogueService interface {
	GenerateQuestions(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuestionsRequest) (*dto.DialogueSessionResponse, error)
	RecordResponse(ctx context.Context, userId uuid.UUID, req *dto.RecordResponseRequest) (*dto.DialogueSessionResponse, error)
	ContinueDialogue(ctx context.Context, userId uuid.UUID, req *dto.ContinueDialogueRequest) (*dto.DialogueSessionResponse, error)
	ExtractInsights(ctx context.Context, userId uuid.UUID, req *dto.ExtractInsightsRequest) (*dto.DialogueSessionResponse, error)

	GetLatestSession(ctx context.Context, userId, noteId uuid.UUID) (*dto.DialogueSessionResponse, error)
	GetHistory(ctx context.Context, userId, noteId uuid.UUID) (*dto.DialogueHistoryResponse, error)
	GetActivity(ctx context.Context, userId, noteId uuid.UUID, query *dto.ActivityQueryRequest) ([]*dto.DialogueActivityResponse, error)
	DeleteSession(ctx context.Context, userId, noteId uuid.UUID, sessionId string) error

	ListQuestionTypes() []dto.QuestionTypeInfoResponse
	ListIntensities() []dto.IntensityInfoResponse
}

type dialogueService struct {
	uowFactory       contract.RepositoryFactory
	sessionRepo      contract.DialogueSessionRepository
	llmProvider      llm.Provider
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewDialogueService(
	uowFactory contract.RepositoryFactory,
	sessionRepo contract.DialogueSessionRepository,
	llmProvider llm.Provider,
	publisherService IPublisherService,
	log logger.ILogger,
) IDialogueService {
	return &dialogueService{
		uowFactory:       uowFactory,
		sessionRepo:      sessionRepo,
		llmProvider:      llmProvider,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *dialogueService) GenerateQuestions(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuestionsRequest) (*dto.DialogueSessionResponse, error) {
	note, err := s.loadNote(ctx, userId, req.NoteId)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(note.Content) == "" {
		return nil, ErrEmptyNoteContent
	}

	types, err := parseQuestionTypes(req.QuestionTypes)
	if err != nil {
		return nil, err
	}

	intensity := entity.DefaultIntensity
	if req.Intensity != "" {
		intensity, err = entity.ParseIntensityLevel(req.Intensity)
		if err != nil {
			return nil, err
		}
	} else if configured := s.getStringConfig(ctx, "dialogue_default_intensity"); configured != "" {
		if parsed, err := entity.ParseIntensityLevel(configured); err == nil {
			intensity = parsed
		}
	}

	maxQuestions := req.MaxQuestions
	if maxQuestions <= 0 {
		maxQuestions = s.getIntConfig(ctx, "dialogue_max_questions", defaultMaxQuestions)
	}

	prompt := fmt.Sprintf(constant.GenerateQuestionsPromptV1,
		note.Content,
		typeInstructions(types),
		intensity.PromptModifier(),
		maxQuestions,
	)

	questions, err := s.askForQuestions(ctx, prompt, maxQuestions)
	if err != nil {
		return nil, err
	}

	session := entity.NewDialogueSession(note.Id, note.Path(), note.Content, intensity)
	session.AddQuestions(questions)

	if err := s.sessionRepo.Save(ctx, userId, session); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, note.Id, session.Id, entity.ActivitySessionStarted, map[string]interface{}{
		"question_count": len(questions),
		"intensity":      intensity.String(),
	})

	return toSessionResponse(session), nil
}

func (s *dialogueService) RecordResponse(ctx context.Context, userId uuid.UUID, req *dto.RecordResponseRequest) (*dto.DialogueSessionResponse, error) {
	session, err := s.resolveSession(ctx, userId, req.NoteId, req.SessionId)
	if err != nil {
		return nil, err
	}

	if err := session.AddResponse(req.QuestionId, req.Response); err != nil {
		// The caller still gets the session state so it can re-render.
		return toSessionResponse(session), err
	}

	if err := s.sessionRepo.Save(ctx, userId, session); err != nil {
		return toSessionResponse(session), err
	}

	s.publishActivity(ctx, req.NoteId, session.Id, entity.ActivityResponseRecorded, map[string]interface{}{
		"question_id": req.QuestionId,
	})

	return toSessionResponse(session), nil
}

func (s *dialogueService) ContinueDialogue(ctx context.Context, userId uuid.UUID, req *dto.ContinueDialogueRequest) (*dto.DialogueSessionResponse, error) {
	session, err := s.resolveSession(ctx, userId, req.NoteId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if len(session.AnsweredQuestions()) == 0 {
		return nil, ErrNoAnsweredQuestions
	}

	types := defaultContinueTypes
	if len(req.QuestionTypes) > 0 {
		types, err = parseQuestionTypes(req.QuestionTypes)
		if err != nil {
			return nil, err
		}
	}

	maxQuestions := req.MaxQuestions
	if maxQuestions <= 0 {
		maxQuestions = s.getIntConfig(ctx, "dialogue_followup_max_questions", defaultContinueMaxQuestions)
	}

	prompt := fmt.Sprintf(constant.ContinueDialoguePromptV1,
		session.NoteContext,
		historyTranscript(session),
		lastExchangeTranscript(session),
		typeInstructions(types),
		maxQuestions,
	)

	questions, err := s.askForQuestions(ctx, prompt, maxQuestions)
	if err != nil {
		return nil, err
	}

	session.AddQuestions(questions)
	if err := s.sessionRepo.Save(ctx, userId, session); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, req.NoteId, session.Id, entity.ActivitySessionStarted, map[string]interface{}{
		"question_count": len(questions),
		"follow_up":      true,
	})

	return toSessionResponse(session), nil
}

func (s *dialogueService) ExtractInsights(ctx context.Context, userId uuid.UUID, req *dto.ExtractInsightsRequest) (*dto.DialogueSessionResponse, error) {
	session, err := s.resolveSession(ctx, userId, req.NoteId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if len(session.AnsweredQuestions()) == 0 {
		return nil, ErrNoAnsweredQuestions
	}

	prompt := fmt.Sprintf(constant.ExtractInsightsPromptV1, historyTranscript(session))

	content, err := s.callLLM(ctx, prompt)
	if err != nil {
		return nil, err
	}

	insights := parser.ParseInsights(content)
	if insights.IsEmpty() {
		return nil, ErrNoInsightsExtracted
	}

	session.SetExtractedInsights(insights)
	if err := s.sessionRepo.Save(ctx, userId, session); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, req.NoteId, session.Id, entity.ActivityInsightsExtracted, map[string]interface{}{
		"insight_count":    len(insights.Insights),
		"note_topic_count": len(insights.NoteTopics),
	})

	return toSessionResponse(session), nil
}

func (s *dialogueService) GetLatestSession(ctx context.Context, userId, noteId uuid.UUID) (*dto.DialogueSessionResponse, error) {
	session, err := s.sessionRepo.FindLatest(ctx, userId, noteId)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *dialogueService) GetHistory(ctx context.Context, userId, noteId uuid.UUID) (*dto.DialogueHistoryResponse, error) {
	sessions, err := s.sessionRepo.FindByNoteId(ctx, userId, noteId)
	if err != nil {
		return nil, err
	}

	res := &dto.DialogueHistoryResponse{
		Sessions: make([]dto.DialogueSessionResponse, len(sessions)),
	}
	for i, session := range sessions {
		res.Sessions[i] = *toSessionResponse(session)
	}
	return res, nil
}

func (s *dialogueService) GetActivity(ctx context.Context, userId, noteId uuid.UUID, query *dto.ActivityQueryRequest) ([]*dto.DialogueActivityResponse, error) {
	// Ownership check before exposing the audit trail.
	if _, err := s.loadNote(ctx, userId, noteId); err != nil {
		return nil, err
	}

	specs := []specification.Specification{
		specification.ActivityByNoteID{NoteID: noteId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if query != nil && query.SessionId != "" {
		specs = append(specs, specification.ActivityBySessionID{SessionID: query.SessionId})
	}
	if query != nil && query.Kind != "" {
		specs = append(specs, specification.ActivityByKind{Kind: query.Kind})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	activities, err := uow.DialogueActivityRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DialogueActivityResponse, len(activities))
	for i, a := range activities {
		res[i] = &dto.DialogueActivityResponse{
			Id:        a.Id,
			NoteId:    a.NoteId,
			SessionId: a.SessionId,
			Kind:      a.Kind,
			Payload:   a.Payload,
			CreatedAt: a.CreatedAt,
		}
	}
	return res, nil
}

func (s *dialogueService) DeleteSession(ctx context.Context, userId, noteId uuid.UUID, sessionId string) error {
	if err := s.sessionRepo.Delete(ctx, userId, noteId, sessionId); err != nil {
		return err
	}

	s.publishActivity(ctx, noteId, sessionId, entity.ActivitySessionDeleted, nil)
	return nil
}

func (s *dialogueService) ListQuestionTypes() []dto.QuestionTypeInfoResponse {
	types := entity.AllQuestionTypes()
	res := make([]dto.QuestionTypeInfoResponse, len(types))
	for i, t := range types {
		res[i] = dto.QuestionTypeInfoResponse{
			Type:       t.String(),
			Label:      t.Label(),
			Icon:       t.Icon(),
			PromptHint: t.PromptHint(),
		}
	}
	return res
}

func (s *dialogueService) ListIntensities() []dto.IntensityInfoResponse {
	levels := entity.AllIntensityLevels()
	res := make([]dto.IntensityInfoResponse, len(levels))
	for i, l := range levels {
		res[i] = dto.IntensityInfoResponse{
			Level: l.String(),
			Label: l.Label(),
			Icon:  l.Icon(),
		}
	}
	return res
}

// askForQuestions runs one LLM call and parses questions out of whatever came
// back. A usable-but-empty response is its own failure mode, distinct from a
// provider failure.
func (s *dialogueService) askForQuestions(ctx context.Context, prompt string, maxQuestions int) ([]entity.Question, error) {
	content, err := s.callLLM(ctx, prompt)
	if err != nil {
		return nil, err
	}

	opts := parser.DefaultOptions()
	if minLen := s.getIntConfig(ctx, "dialogue_parser_min_length", 0); minLen > 0 {
		opts.MinLength = minLen
	}

	questions := parser.ParseQuestionsWith(content, opts)
	if len(questions) == 0 {
		return nil, ErrNoQuestionsGenerated
	}
	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions, nil
}

func (s *dialogueService) callLLM(ctx context.Context, prompt string) (string, error) {
	if !s.llmProvider.IsAvailable() {
		return "", ErrLLMUnavailable
	}

	result := s.llmProvider.SimpleGenerate(ctx, prompt, constant.SocraticSystemPromptV1)
	if !result.Success {
		s.logger.Error("DialogueService", "LLM call failed", map[string]interface{}{
			"error": result.Error,
		})
		return "", fmt.Errorf("%w: %s", ErrLLMCallFailed, result.Error)
	}
	return result.Content, nil
}

// resolveSession picks the addressed session, or the most recent one when the
// request does not name one.
func (s *dialogueService) resolveSession(ctx context.Context, userId, noteId uuid.UUID, sessionId string) (*entity.DialogueSession, error) {
	if sessionId == "" {
		return s.sessionRepo.FindLatest(ctx, userId, noteId)
	}
	return s.sessionRepo.FindById(ctx, userId, noteId, sessionId)
}

func (s *dialogueService) loadNote(ctx context.Context, userId, noteId uuid.UUID) (*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, contract.ErrNoteNotFound
	}
	return note, nil
}

func (s *dialogueService) publishActivity(ctx context.Context, noteId uuid.UUID, sessionId, kind string, payload map[string]interface{}) {
	msg := dto.PublishDialogueActivityMessage{
		NoteId:    noteId,
		SessionId: sessionId,
		Kind:      kind,
		Payload:   payload,
	}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return
	}
	// Activity is auxiliary; a publish failure never fails the request.
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.logger.Warn("DialogueService", "Failed to publish dialogue activity", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
	}
}

func (s *dialogueService) getIntConfig(ctx context.Context, key string, fallback int) int {
	raw := s.getStringConfig(ctx, key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}

func (s *dialogueService) getStringConfig(ctx context.Context, key string) string {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	config, err := uow.AiConfigRepository().FindConfigurationByKey(ctx, key)
	if err != nil || config == nil {
		return ""
	}
	return config.Value
}

func parseQuestionTypes(raw []string) ([]entity.QuestionType, error) {
	types := make([]entity.QuestionType, 0, len(raw))
	for _, r := range raw {
		t, err := entity.ParseQuestionType(r)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func typeInstructions(types []entity.QuestionType) string {
	var b strings.Builder
	for _, t := range types {
		fmt.Fprintf(&b, "- %s (%s): %s\n", t.String(), t.Label(), t.PromptHint())
	}
	return strings.TrimRight(b.String(), "\n")
}

func historyTranscript(session *entity.DialogueSession) string {
	var b strings.Builder
	for i, ex := range session.History() {
		fmt.Fprintf(&b, "Q%d (%s): %s\n", i+1, ex.Question.Type.Label(), ex.Question.Content)
		if ex.Response != nil {
			fmt.Fprintf(&b, "A%d: %s\n", i+1, ex.Response.Content)
		} else {
			fmt.Fprintf(&b, "A%d: (not answered yet)\n", i+1)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func lastExchangeTranscript(session *entity.DialogueSession) string {
	ex := session.LastExchange()
	if ex == nil {
		return "(none)"
	}
	text := fmt.Sprintf("Q (%s): %s", ex.Question.Type.Label(), ex.Question.Content)
	if ex.Response != nil {
		text += fmt.Sprintf("\nA: %s", ex.Response.Content)
	}
	return text
}

func toSessionResponse(session *entity.DialogueSession) *dto.DialogueSessionResponse {
	exchanges := make([]dto.ExchangeResponse, 0, len(session.Questions))
	for _, ex := range session.History() {
		item := dto.ExchangeResponse{
			Question: dto.QuestionResponse{
				Id:        ex.Question.Id,
				Type:      ex.Question.Type.String(),
				TypeLabel: ex.Question.Type.Label(),
				TypeIcon:  ex.Question.Type.Icon(),
				Content:   ex.Question.Content,
				CreatedAt: ex.Question.CreatedAt,
			},
		}
		if ex.Response != nil {
			content := ex.Response.Content
			item.Response = &content
		}
		exchanges = append(exchanges, item)
	}

	return &dto.DialogueSessionResponse{
		Id:            session.Id,
		NoteId:        session.NoteId,
		NotePath:      session.NotePath,
		Intensity:     session.Intensity.String(),
		Exchanges:     exchanges,
		Insights:      toInsightsResponse(session.Insights),
		AnsweredCount: len(session.AnsweredQuestions()),
		TotalCount:    len(session.Questions),
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}
}

func toInsightsResponse(in *entity.ExtractedInsights) *dto.InsightsResponse {
	if in == nil {
		return nil
	}

	res := &dto.InsightsResponse{
		Insights:              make([]dto.InsightItemResponse, len(in.Insights)),
		NoteTopics:            make([]dto.NoteTopicResponse, len(in.NoteTopics)),
		UnansweredQuestions:   in.UnansweredQuestions,
		SuggestedEnhancements: in.SuggestedEnhancements,
	}
	for i, insight := range in.Insights {
		res.Insights[i] = dto.InsightItemResponse{
			Title:       insight.Title,
			Description: insight.Description,
			Category:    string(insight.Category),
		}
	}
	for i, topic := range in.NoteTopics {
		res.NoteTopics[i] = dto.NoteTopicResponse{
			Title:         topic.Title,
			Description:   topic.Description,
			SuggestedTags: topic.SuggestedTags,
		}
	}
	return res
}
