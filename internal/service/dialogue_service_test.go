package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"socratic-notes-be/internal/dto"
	"socratic-notes-be/internal/entity"
	"socratic-notes-be/internal/repository/contract"
	"socratic-notes-be/internal/repository/specification"
	"socratic-notes-be/pkg/llm"

	"github.com/google/uuid"
)

// --- Fakes ---

type fakeProvider struct {
	available  bool
	result     *llm.Result
	lastPrompt string
	lastSystem string
	calls      int
}

func (f *fakeProvider) Generate(ctx context.Context, messages []llm.Message, options ...llm.Option) *llm.Result {
	f.calls++
	return f.result
}

func (f *fakeProvider) SimpleGenerate(ctx context.Context, userPrompt, systemPrompt string, options ...llm.Option) *llm.Result {
	f.calls++
	f.lastPrompt = userPrompt
	f.lastSystem = systemPrompt
	return f.result
}

func (f *fakeProvider) IsAvailable() bool { return f.available }

type fakeSessionRepo struct {
	sessions []*entity.DialogueSession
	saved    []*entity.DialogueSession
	saveErr  error
}

func (f *fakeSessionRepo) Save(ctx context.Context, userId uuid.UUID, session *entity.DialogueSession) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, session)
	return nil
}

func (f *fakeSessionRepo) FindByNoteId(ctx context.Context, userId, noteId uuid.UUID) ([]*entity.DialogueSession, error) {
	return f.sessions, nil
}

func (f *fakeSessionRepo) FindLatest(ctx context.Context, userId, noteId uuid.UUID) (*entity.DialogueSession, error) {
	if len(f.sessions) == 0 {
		return nil, contract.ErrSessionNotFound
	}
	return f.sessions[0], nil
}

func (f *fakeSessionRepo) FindById(ctx context.Context, userId, noteId uuid.UUID, sessionId string) (*entity.DialogueSession, error) {
	for _, s := range f.sessions {
		if s.Id == sessionId {
			return s, nil
		}
	}
	return nil, contract.ErrSessionNotFound
}

func (f *fakeSessionRepo) Delete(ctx context.Context, userId, noteId uuid.UUID, sessionId string) error {
	for i, s := range f.sessions {
		if s.Id == sessionId {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return contract.ErrSessionNotFound
}

type fakePublisher struct {
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakePublisher) kinds() []string {
	kinds := make([]string, 0, len(f.payloads))
	for _, p := range f.payloads {
		var msg dto.PublishDialogueActivityMessage
		if err := json.Unmarshal(p, &msg); err == nil {
			kinds = append(kinds, msg.Kind)
		}
	}
	return kinds
}

type fakeNoteRepo struct {
	note *entity.Note
}

func (f *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error { return nil }
func (f *fakeNoteRepo) Update(ctx context.Context, note *entity.Note) error { return nil }
func (f *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (f *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	return f.note, nil
}

func (f *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	if f.note == nil {
		return nil, nil
	}
	return []*entity.Note{f.note}, nil
}

func (f *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeAiConfigRepo struct {
	values map[string]string
}

func (f *fakeAiConfigRepo) FindAllConfigurations(ctx context.Context, specs ...specification.Specification) ([]*entity.AiConfiguration, error) {
	return nil, nil
}

func (f *fakeAiConfigRepo) FindConfigurationByKey(ctx context.Context, key string) (*entity.AiConfiguration, error) {
	if v, ok := f.values[key]; ok {
		return &entity.AiConfiguration{Key: key, Value: v}, nil
	}
	return nil, fmt.Errorf("config not found: %s", key)
}

func (f *fakeAiConfigRepo) UpdateConfiguration(ctx context.Context, config *entity.AiConfiguration) error {
	return nil
}

func (f *fakeAiConfigRepo) CreateConfiguration(ctx context.Context, config *entity.AiConfiguration) error {
	return nil
}

type fakeActivityRepo struct {
	activities []*entity.DialogueActivity
}

func (f *fakeActivityRepo) Create(ctx context.Context, activity *entity.DialogueActivity) error {
	f.activities = append(f.activities, activity)
	return nil
}

func (f *fakeActivityRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DialogueActivity, error) {
	return f.activities, nil
}

func (f *fakeActivityRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.activities)), nil
}

type fakeUnitOfWork struct {
	notes      *fakeNoteRepo
	configs    *fakeAiConfigRepo
	activities *fakeActivityRepo
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }

func (f *fakeUnitOfWork) NoteRepository() contract.NoteRepository { return f.notes }
func (f *fakeUnitOfWork) DialogueActivityRepository() contract.DialogueActivityRepository {
	return f.activities
}
func (f *fakeUnitOfWork) AiConfigRepository() contract.IAiConfigRepository { return f.configs }

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) contract.UnitOfWork { return f.uow }

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// --- Fixture ---

type fixture struct {
	service   IDialogueService
	note      *entity.Note
	provider  *fakeProvider
	sessions  *fakeSessionRepo
	publisher *fakePublisher
	configs   *fakeAiConfigRepo
	userId    uuid.UUID
}

func questionsJSON(contents ...string) string {
	type q struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}
	payload := struct {
		Questions []q `json:"questions"`
	}{}
	for _, c := range contents {
		payload.Questions = append(payload.Questions, q{Type: "ASSUMPTION", Content: c})
	}
	b, _ := json.Marshal(payload)
	return "```json\n" + string(b) + "\n```"
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	note := &entity.Note{
		Id:      uuid.New(),
		Title:   "Remote Work",
		Content: "I believe remote work is always more productive.",
		UserId:  uuid.New(),
	}
	provider := &fakeProvider{
		available: true,
		result:    llm.Succeed(questionsJSON("What are you assuming about interruptions at home?"), nil),
	}
	sessions := &fakeSessionRepo{}
	publisher := &fakePublisher{}
	configs := &fakeAiConfigRepo{values: map[string]string{}}

	uow := &fakeUnitOfWork{
		notes:      &fakeNoteRepo{note: note},
		configs:    configs,
		activities: &fakeActivityRepo{},
	}

	svc := NewDialogueService(&fakeUowFactory{uow: uow}, sessions, provider, publisher, nopLogger{})

	return &fixture{
		service:   svc,
		note:      note,
		provider:  provider,
		sessions:  sessions,
		publisher: publisher,
		configs:   configs,
		userId:    note.UserId,
	}
}

func (f *fixture) withAnsweredSession(t *testing.T) *entity.DialogueSession {
	t.Helper()

	session := entity.NewDialogueSession(f.note.Id, f.note.Path(), f.note.Content, entity.IntensityModerate)
	q, err := entity.NewQuestion(entity.QuestionTypeAssumption, "What are you taking for granted?")
	if err != nil {
		t.Fatal(err)
	}
	session.AddQuestions([]entity.Question{q})
	if err := session.AddResponse(q.Id, "That my home is interruption free."); err != nil {
		t.Fatal(err)
	}
	f.sessions.sessions = append(f.sessions.sessions, session)
	return session
}

// --- GenerateQuestions ---

func TestGenerateQuestions(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.GenerateQuestions(context.Background(), f.userId, &dto.GenerateQuestionsRequest{
		NoteId:        f.note.Id,
		QuestionTypes: []string{"ASSUMPTION"},
		Intensity:     "CHALLENGING",
	})
	if err != nil {
		t.Fatalf("GenerateQuestions failed: %v", err)
	}

	if res.Intensity != "CHALLENGING" {
		t.Errorf("Intensity = %s, want CHALLENGING", res.Intensity)
	}
	if res.TotalCount != 1 || res.AnsweredCount != 0 {
		t.Errorf("counts = %d/%d, want 0/1", res.AnsweredCount, res.TotalCount)
	}
	if len(f.sessions.saved) != 1 {
		t.Fatalf("saved sessions = %d, want 1", len(f.sessions.saved))
	}
	if kinds := f.publisher.kinds(); len(kinds) != 1 || kinds[0] != entity.ActivitySessionStarted {
		t.Errorf("published kinds = %v, want [SESSION_STARTED]", kinds)
	}
}

func TestGenerateQuestionsEmptyNote(t *testing.T) {
	f := newFixture(t)
	f.note.Content = "   \n  "

	_, err := f.service.GenerateQuestions(context.Background(), f.userId, &dto.GenerateQuestionsRequest{
		NoteId:        f.note.Id,
		QuestionTypes: []string{"ASSUMPTION"},
	})
	if !errors.Is(err, ErrEmptyNoteContent) {
		t.Errorf("err = %v, want ErrEmptyNoteContent", err)
	}
	if f.provider.calls != 0 {
		t.Error("provider must not be called for an empty note")
	}
}

func TestGenerateQuestionsProviderUnavailable(t *testing.T) {
	f := newFixture(t)
	f.provider.available = false

	_, err := f.service.GenerateQuestions(context.Background(), f.userId, &dto.GenerateQuestionsRequest{
		NoteId:        f.note.Id,
		QuestionTypes: []string{"ASSUMPTION"},
	})
	if !errors.Is(err, ErrLLMUnavailable) {
		t.Errorf("err = %v, want ErrLLMUnavailable", err)
	}
}

func TestGenerateQuestionsProviderFailure(t *testing.T) {
	f := newFixture(t)
	f.provider.result = llm.Fail("rate limited")

	_, err := f.service.GenerateQuestions(context.Background(), f.userId, &dto.GenerateQuestionsRequest{
		NoteId:        f.note.Id,
		QuestionTypes: []string{"ASSUMPTION"},
	})
	if !errors.Is(err, ErrLLMCallFailed) {
		t.Errorf("err = %v, want ErrLLMCallFailed", err)
	}
	if len(f.sessions.saved) != 0 {
		t.Error("nothing should be saved when the provider fails")
	}
}

func TestGenerateQuestionsUnusableResponse(t *testing.T) {
	f := newFixture(t)
	f.provider.result = llm.Succeed("I cannot answer that.", nil)

	_, err := f.service.GenerateQuestions(context.Background(), f.userId, &dto.GenerateQuestionsRequest{
		NoteId:        f.note.Id,
		QuestionTypes: []string{"ASSUMPTION"},
	})
	if !errors.Is(err, ErrNoQuestionsGenerated) {
		t.Errorf("err = %v, want ErrNoQuestionsGenerated", err)
	}
}

func TestGenerateQuestionsTruncatesToMax(t *testing.T) {
	f := newFixture(t)
	f.provider.result = llm.Succeed(questionsJSON(
		"First generated question about assumptions?",
		"Second generated question about assumptions?",
		"Third generated question about assumptions?",
	), nil)

	res, err := f.service.GenerateQuestions(context.Background(), f.userId, &dto.GenerateQuestionsRequest{
		NoteId:        f.note.Id,
		QuestionTypes: []string{"ASSUMPTION"},
		MaxQuestions:  2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2 after truncation", res.TotalCount)
	}
}

func TestGenerateQuestionsConfiguredDefaults(t *testing.T) {
	f := newFixture(t)
	f.configs.values["dialogue_default_intensity"] = "GENTLE"

	res, err := f.service.GenerateQuestions(context.Background(), f.userId, &dto.GenerateQuestionsRequest{
		NoteId:        f.note.Id,
		QuestionTypes: []string{"ASSUMPTION"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Intensity != "GENTLE" {
		t.Errorf("Intensity = %s, want the configured GENTLE default", res.Intensity)
	}
}

func TestGenerateQuestionsInvalidType(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GenerateQuestions(context.Background(), f.userId, &dto.GenerateQuestionsRequest{
		NoteId:        f.note.Id,
		QuestionTypes: []string{"SOCRATIC"},
	})
	if !errors.Is(err, entity.ErrInvalidQuestionType) {
		t.Errorf("err = %v, want ErrInvalidQuestionType", err)
	}
}

// --- RecordResponse ---

func TestRecordResponse(t *testing.T) {
	f := newFixture(t)
	session := entity.NewDialogueSession(f.note.Id, f.note.Path(), f.note.Content, entity.IntensityModerate)
	q, err := entity.NewQuestion(entity.QuestionTypeAssumption, "What are you taking for granted?")
	if err != nil {
		t.Fatal(err)
	}
	session.AddQuestions([]entity.Question{q})
	f.sessions.sessions = append(f.sessions.sessions, session)

	res, err := f.service.RecordResponse(context.Background(), f.userId, &dto.RecordResponseRequest{
		NoteId:     f.note.Id,
		QuestionId: q.Id,
		Response:   "Honestly, quite a lot.",
	})
	if err != nil {
		t.Fatalf("RecordResponse failed: %v", err)
	}
	if res.AnsweredCount != 1 {
		t.Errorf("AnsweredCount = %d, want 1", res.AnsweredCount)
	}
	if len(f.sessions.saved) != 1 {
		t.Error("mutated session should be saved")
	}
	if kinds := f.publisher.kinds(); len(kinds) != 1 || kinds[0] != entity.ActivityResponseRecorded {
		t.Errorf("published kinds = %v, want [RESPONSE_RECORDED]", kinds)
	}
}

func TestRecordResponseUnknownQuestionStillReturnsSession(t *testing.T) {
	f := newFixture(t)
	f.withAnsweredSession(t)

	res, err := f.service.RecordResponse(context.Background(), f.userId, &dto.RecordResponseRequest{
		NoteId:     f.note.Id,
		QuestionId: "q_ghost",
		Response:   "answer to nothing",
	})
	if !errors.Is(err, entity.ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
	// The session still comes back so the caller can re-render its state.
	if res == nil {
		t.Fatal("session state should be returned alongside the error")
	}
	if len(f.sessions.saved) != 0 {
		t.Error("failed mutation must not be saved")
	}
}

func TestRecordResponseBlankAnswerRejected(t *testing.T) {
	f := newFixture(t)
	session := entity.NewDialogueSession(f.note.Id, f.note.Path(), f.note.Content, entity.IntensityModerate)
	q, err := entity.NewQuestion(entity.QuestionTypeAssumption, "What are you taking for granted?")
	if err != nil {
		t.Fatal(err)
	}
	session.AddQuestions([]entity.Question{q})
	f.sessions.sessions = append(f.sessions.sessions, session)

	res, err := f.service.RecordResponse(context.Background(), f.userId, &dto.RecordResponseRequest{
		NoteId:     f.note.Id,
		QuestionId: q.Id,
		Response:   " \n\t ",
	})
	if !errors.Is(err, entity.ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}
	if res == nil {
		t.Fatal("session state should be returned alongside the error")
	}
	if res.AnsweredCount != 0 {
		t.Errorf("AnsweredCount = %d, want 0", res.AnsweredCount)
	}
	if len(f.sessions.saved) != 0 {
		t.Error("blank answer must not be saved")
	}
	if len(f.publisher.payloads) != 0 {
		t.Error("blank answer must not publish activity")
	}
}

func TestRecordResponseNoSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RecordResponse(context.Background(), f.userId, &dto.RecordResponseRequest{
		NoteId:     f.note.Id,
		QuestionId: "q_any",
		Response:   "hello",
	})
	if !errors.Is(err, contract.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

// --- ContinueDialogue ---

func TestContinueDialogue(t *testing.T) {
	f := newFixture(t)
	session := f.withAnsweredSession(t)
	f.provider.result = llm.Succeed(questionsJSON("A follow-up question digging deeper?"), nil)

	res, err := f.service.ContinueDialogue(context.Background(), f.userId, &dto.ContinueDialogueRequest{
		NoteId:    f.note.Id,
		SessionId: session.Id,
	})
	if err != nil {
		t.Fatalf("ContinueDialogue failed: %v", err)
	}
	if res.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2 after follow-up", res.TotalCount)
	}

	// The follow-up prompt must carry the conversation so far.
	if !strings.Contains(f.provider.lastPrompt, "That my home is interruption free.") {
		t.Error("prompt should include the recorded answer")
	}
}

func TestContinueDialogueRequiresAnswer(t *testing.T) {
	f := newFixture(t)
	session := entity.NewDialogueSession(f.note.Id, f.note.Path(), f.note.Content, entity.IntensityModerate)
	q, err := entity.NewQuestion(entity.QuestionTypeAssumption, "Unanswered question here?")
	if err != nil {
		t.Fatal(err)
	}
	session.AddQuestions([]entity.Question{q})
	f.sessions.sessions = append(f.sessions.sessions, session)

	_, err = f.service.ContinueDialogue(context.Background(), f.userId, &dto.ContinueDialogueRequest{
		NoteId: f.note.Id,
	})
	if !errors.Is(err, ErrNoAnsweredQuestions) {
		t.Errorf("err = %v, want ErrNoAnsweredQuestions", err)
	}
	if f.provider.calls != 0 {
		t.Error("provider must not be called without an answered question")
	}
}

func TestContinueDialogueResolvesLatestWhenUnaddressed(t *testing.T) {
	f := newFixture(t)
	f.withAnsweredSession(t)
	f.provider.result = llm.Succeed(questionsJSON("Another follow-up question to consider?"), nil)

	// No session id in the request: the most recent session is used.
	res, err := f.service.ContinueDialogue(context.Background(), f.userId, &dto.ContinueDialogueRequest{
		NoteId: f.note.Id,
	})
	if err != nil {
		t.Fatalf("ContinueDialogue failed: %v", err)
	}
	if res.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", res.TotalCount)
	}
}

// --- ExtractInsights ---

func insightsJSON() string {
	return "```json\n" + `{
		"insights": [{"title": "Interruption blind spot", "description": "Home has its own distractions.", "category": "discovery"}],
		"note_topics": [{"title": "Focus Environments", "description": "Where deep work happens.", "suggested_tags": ["focus"]}],
		"unanswered_questions": [],
		"suggested_enhancements": ["Track actual focus hours"]
	}` + "\n```"
}

func TestExtractInsights(t *testing.T) {
	f := newFixture(t)
	f.withAnsweredSession(t)
	f.provider.result = llm.Succeed(insightsJSON(), nil)

	res, err := f.service.ExtractInsights(context.Background(), f.userId, &dto.ExtractInsightsRequest{
		NoteId: f.note.Id,
	})
	if err != nil {
		t.Fatalf("ExtractInsights failed: %v", err)
	}
	if res.Insights == nil || len(res.Insights.Insights) != 1 {
		t.Fatal("insight bundle missing from response")
	}
	if len(f.sessions.saved) != 1 {
		t.Error("session with insights should be saved")
	}
	if kinds := f.publisher.kinds(); len(kinds) != 1 || kinds[0] != entity.ActivityInsightsExtracted {
		t.Errorf("published kinds = %v, want [INSIGHTS_EXTRACTED]", kinds)
	}
}

func TestExtractInsightsRequiresAnswer(t *testing.T) {
	f := newFixture(t)
	session := entity.NewDialogueSession(f.note.Id, f.note.Path(), f.note.Content, entity.IntensityModerate)
	f.sessions.sessions = append(f.sessions.sessions, session)

	_, err := f.service.ExtractInsights(context.Background(), f.userId, &dto.ExtractInsightsRequest{
		NoteId: f.note.Id,
	})
	if !errors.Is(err, ErrNoAnsweredQuestions) {
		t.Errorf("err = %v, want ErrNoAnsweredQuestions", err)
	}
}

func TestExtractInsightsEmptyResult(t *testing.T) {
	f := newFixture(t)
	f.withAnsweredSession(t)
	f.provider.result = llm.Succeed("Nothing structured in this response.", nil)

	_, err := f.service.ExtractInsights(context.Background(), f.userId, &dto.ExtractInsightsRequest{
		NoteId: f.note.Id,
	})
	if !errors.Is(err, ErrNoInsightsExtracted) {
		t.Errorf("err = %v, want ErrNoInsightsExtracted", err)
	}
	if len(f.sessions.saved) != 0 {
		t.Error("nothing should be saved when no insights were extracted")
	}
}

// --- Reads and deletes ---

func TestGetHistory(t *testing.T) {
	f := newFixture(t)
	f.withAnsweredSession(t)
	f.withAnsweredSession(t)

	res, err := f.service.GetHistory(context.Background(), f.userId, f.note.Id)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Sessions) != 2 {
		t.Errorf("session count = %d, want 2", len(res.Sessions))
	}
}

func TestDeleteSessionPublishesActivity(t *testing.T) {
	f := newFixture(t)
	session := f.withAnsweredSession(t)

	if err := f.service.DeleteSession(context.Background(), f.userId, f.note.Id, session.Id); err != nil {
		t.Fatal(err)
	}
	if kinds := f.publisher.kinds(); len(kinds) != 1 || kinds[0] != entity.ActivitySessionDeleted {
		t.Errorf("published kinds = %v, want [SESSION_DELETED]", kinds)
	}

	err := f.service.DeleteSession(context.Background(), f.userId, f.note.Id, session.Id)
	if !errors.Is(err, contract.ErrSessionNotFound) {
		t.Errorf("second delete err = %v, want ErrSessionNotFound", err)
	}
}

func TestListQuestionTypesAndIntensities(t *testing.T) {
	f := newFixture(t)

	types := f.service.ListQuestionTypes()
	if len(types) != 5 {
		t.Errorf("type count = %d, want 5", len(types))
	}
	levels := f.service.ListIntensities()
	if len(levels) != 3 {
		t.Errorf("level count = %d, want 3", len(levels))
	}
}
