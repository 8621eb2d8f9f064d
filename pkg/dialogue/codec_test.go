package dialogue

import (
	"encoding/json"
	"strings"
	"testing"

	"socratic-notes-be/internal/entity"
	"socratic-notes-be/pkg/dialogue/blockformat"

	"github.com/google/uuid"
)

func newTestSession(t *testing.T, noteContext string) *entity.DialogueSession {
	t.Helper()

	session := entity.NewDialogueSession(uuid.New(), "Test Note", noteContext, entity.IntensityModerate)
	q, err := entity.NewQuestion(entity.QuestionTypeAssumption, "What are you taking for granted here?")
	if err != nil {
		t.Fatal(err)
	}
	session.AddQuestions([]entity.Question{q})
	return session
}

func mustPayload(t *testing.T, session *entity.DialogueSession) string {
	t.Helper()
	data := session.ToData(entity.ExportOptions{ExcludeNoteContext: true})
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	return string(payload)
}

func TestUpsertIntoEmptyDocument(t *testing.T) {
	session := newTestSession(t, "original content")

	doc, err := Upsert("", session)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if !strings.HasPrefix(doc, entity.DialogueSectionHeading) {
		t.Error("empty document should start with the dialogue section, no separator")
	}
	if !strings.Contains(doc, blockformat.CalloutSentinel) {
		t.Error("document should carry the callout data block")
	}
	if !strings.Contains(doc, session.Id) {
		t.Error("data block should embed the session id")
	}
}

func TestUpsertAppendsAfterSeparator(t *testing.T) {
	session := newTestSession(t, "My thoughts on remote work.")

	doc, err := Upsert("My thoughts on remote work.\n", session)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if !strings.HasPrefix(doc, "My thoughts on remote work."+SectionSeparator) {
		t.Errorf("existing content should be preserved and separated, got:\n%s", doc[:80])
	}
	if strings.Count(doc, entity.DialogueSectionHeading) != 1 {
		t.Error("exactly one dialogue section expected")
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	session := newTestSession(t, "note body")

	doc, err := Upsert("note body", session)
	if err != nil {
		t.Fatal(err)
	}

	// Mutate the session and write it again: the region is replaced, not
	// appended a second time.
	if err := session.AddResponse(session.Questions[0].Id, "My honest answer."); err != nil {
		t.Fatal(err)
	}
	doc, err = Upsert(doc, session)
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(doc, entity.DialogueSectionHeading); got != 1 {
		t.Errorf("section count = %d, want 1 after re-upsert", got)
	}
	if got := strings.Count(doc, session.Id); got != 1 {
		t.Errorf("session id appears %d times, want 1", got)
	}
	if !strings.Contains(doc, "My honest answer.") {
		t.Error("updated transcript should carry the recorded response")
	}
}

func TestUpsertKeepsOtherSessions(t *testing.T) {
	first := newTestSession(t, "note body")
	second := newTestSession(t, "note body")

	doc, err := Upsert("note body", first)
	if err != nil {
		t.Fatal(err)
	}
	doc, err = Upsert(doc, second)
	if err != nil {
		t.Fatal(err)
	}

	// Rewriting the first session must leave the second untouched.
	doc, err = Upsert(doc, first)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(doc, first.Id) || !strings.Contains(doc, second.Id) {
		t.Error("both sessions should survive a re-upsert of one of them")
	}
}

func TestExtractSessionsRoundTrip(t *testing.T) {
	session := newTestSession(t, "the note content")

	doc, err := Upsert("the note content", session)
	if err != nil {
		t.Fatal(err)
	}

	sessions := ExtractSessions(doc, "the note content")
	if len(sessions) != 1 {
		t.Fatalf("session count = %d, want 1", len(sessions))
	}
	got := sessions[0]
	if got.Id != session.Id {
		t.Errorf("Id = %s, want %s", got.Id, session.Id)
	}
	if len(got.Questions) != 1 || got.Questions[0].Content != session.Questions[0].Content {
		t.Error("questions mangled in round trip")
	}
	// NoteContext is not stored in the block; it is re-injected at read time.
	if got.NoteContext != "the note content" {
		t.Errorf("NoteContext = %q, want the injected content", got.NoteContext)
	}
}

func TestExtractSessionsLegacyMarkerFormat(t *testing.T) {
	session := newTestSession(t, "")
	doc := "old note body\n\n" +
		blockformat.MarkerStart + "\n" +
		mustPayload(t, session) + "\n" +
		blockformat.MarkerEnd + "\n"

	sessions := ExtractSessions(doc, "current content")
	if len(sessions) != 1 {
		t.Fatalf("session count = %d, want 1 from marker format", len(sessions))
	}
	if sessions[0].Id != session.Id {
		t.Errorf("Id = %s, want %s", sessions[0].Id, session.Id)
	}
}

func TestExtractSessionsLegacyCommentFormat(t *testing.T) {
	session := newTestSession(t, "")
	doc := "old note body\n" +
		blockformat.CommentPrefix + mustPayload(t, session) + "%%\n"

	sessions := ExtractSessions(doc, "")
	if len(sessions) != 1 {
		t.Fatalf("session count = %d, want 1 from comment format", len(sessions))
	}
}

func TestExtractSessionsFirstFormatWins(t *testing.T) {
	calloutSession := newTestSession(t, "")
	markerSession := newTestSession(t, "")

	doc, err := Upsert("body", calloutSession)
	if err != nil {
		t.Fatal(err)
	}
	// A stale marker block left behind by an old client must be ignored once
	// a callout block exists.
	doc += "\n" + blockformat.MarkerStart + "\n" + mustPayload(t, markerSession) + "\n" + blockformat.MarkerEnd + "\n"

	sessions := ExtractSessions(doc, "")
	if len(sessions) != 1 {
		t.Fatalf("session count = %d, want 1 (callout format wins)", len(sessions))
	}
	if sessions[0].Id != calloutSession.Id {
		t.Errorf("Id = %s, want the callout session %s", sessions[0].Id, calloutSession.Id)
	}
}

func TestExtractSessionsSkipsBadBlocks(t *testing.T) {
	good := newTestSession(t, "")
	doc, err := Upsert("body", good)
	if err != nil {
		t.Fatal(err)
	}
	doc += "\n" + blockformat.CalloutSentinel + "\n" +
		blockformat.CalloutWarning + "\n" +
		"> SOCRATIC-SESSION-DATA: {this is not json}\n"

	sessions := ExtractSessions(doc, "")
	if len(sessions) != 1 {
		t.Fatalf("session count = %d, want 1 (bad block skipped, not fatal)", len(sessions))
	}
	if sessions[0].Id != good.Id {
		t.Errorf("Id = %s, want %s", sessions[0].Id, good.Id)
	}
}

func TestExtractSessionsNoBlocks(t *testing.T) {
	if got := ExtractSessions("just a plain note, nothing embedded", ""); got != nil {
		t.Errorf("sessions = %v, want nil", got)
	}
}

func TestRemoveLastSessionCollapsesSection(t *testing.T) {
	session := newTestSession(t, "the original note text")

	doc, err := Upsert("the original note text\n", session)
	if err != nil {
		t.Fatal(err)
	}

	result, removed := Remove(doc, session.Id)
	if !removed {
		t.Fatal("Remove should report success")
	}
	if strings.Contains(result, entity.DialogueSectionHeading) {
		t.Error("section heading should go with the last session")
	}
	if strings.Contains(result, "---") {
		t.Errorf("dangling separator left behind:\n%q", result)
	}
	if result != "the original note text" {
		t.Errorf("result = %q, want the original content trimmed", result)
	}
}

func TestRemoveOneOfTwoSessionsKeepsTheOther(t *testing.T) {
	first := newTestSession(t, "body")
	second := newTestSession(t, "body")

	doc, err := Upsert("body", first)
	if err != nil {
		t.Fatal(err)
	}
	doc, err = Upsert(doc, second)
	if err != nil {
		t.Fatal(err)
	}

	result, removed := Remove(doc, first.Id)
	if !removed {
		t.Fatal("Remove should report success")
	}
	if strings.Contains(result, first.Id) {
		t.Error("removed session id still present")
	}
	if !strings.Contains(result, second.Id) {
		t.Error("surviving session lost")
	}

	sessions := ExtractSessions(result, "body")
	if len(sessions) != 1 || sessions[0].Id != second.Id {
		t.Error("surviving session should still parse")
	}
}

func TestRemoveUnknownSession(t *testing.T) {
	session := newTestSession(t, "body")
	doc, err := Upsert("body", session)
	if err != nil {
		t.Fatal(err)
	}

	result, removed := Remove(doc, "session_0_deadbeef")
	if removed {
		t.Error("Remove of unknown id should report false")
	}
	if result != doc {
		t.Error("document must be untouched when nothing was removed")
	}
}
