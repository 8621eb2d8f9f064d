package implementation

import (
	"context"
	"errors"
	"testing"

	"socratic-notes-be/internal/entity"
	"socratic-notes-be/internal/repository/contract"
	"socratic-notes-be/internal/repository/memory"
	"socratic-notes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type stubNoteRepo struct {
	note    *entity.Note
	findErr error
	updated int
}

func (s *stubNoteRepo) Create(ctx context.Context, note *entity.Note) error { return nil }

func (s *stubNoteRepo) Update(ctx context.Context, note *entity.Note) error {
	s.updated++
	return nil
}

func (s *stubNoteRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	return s.note, s.findErr
}

func (s *stubNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	if s.note == nil {
		return nil, nil
	}
	return []*entity.Note{s.note}, nil
}

func (s *stubNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type stubUnitOfWork struct {
	notes *stubNoteRepo
}

func (s *stubUnitOfWork) Begin(ctx context.Context) error { return nil }
func (s *stubUnitOfWork) Commit() error                   { return nil }
func (s *stubUnitOfWork) Rollback() error                 { return nil }

func (s *stubUnitOfWork) NoteRepository() contract.NoteRepository { return s.notes }
func (s *stubUnitOfWork) DialogueActivityRepository() contract.DialogueActivityRepository {
	return nil
}
func (s *stubUnitOfWork) AiConfigRepository() contract.IAiConfigRepository { return nil }

type stubFactory struct {
	uow *stubUnitOfWork
}

func (s *stubFactory) NewUnitOfWork(ctx context.Context) contract.UnitOfWork { return s.uow }

func newSessionRepo(notes *stubNoteRepo) (contract.DialogueSessionRepository, *memory.DialogueCache) {
	cache := memory.NewDialogueCache()
	repo := NewDialogueSessionRepository(&stubFactory{uow: &stubUnitOfWork{notes: notes}}, cache)
	return repo, cache
}

func TestSaveDropsCacheWhenNoteMissing(t *testing.T) {
	noteId := uuid.New()
	session := entity.NewDialogueSession(noteId, "notes/remote-work.md", "note body", entity.DefaultIntensity)

	repo, cache := newSessionRepo(&stubNoteRepo{note: nil})
	cache.Set(noteId, []*entity.DialogueSession{session})

	err := repo.Save(context.Background(), uuid.New(), session)
	if !errors.Is(err, contract.ErrNoteNotFound) {
		t.Fatalf("Save error = %v, want ErrNoteNotFound", err)
	}

	// A failed write must not leave the mutated in-memory copy served from
	// the cache. The next read has to rebuild from the persisted note.
	if _, found := cache.Get(noteId); found {
		t.Error("cache still holds sessions after failed Save")
	}
}

func TestSaveDropsCacheWhenLookupFails(t *testing.T) {
	noteId := uuid.New()
	session := entity.NewDialogueSession(noteId, "notes/remote-work.md", "note body", entity.DefaultIntensity)

	repo, cache := newSessionRepo(&stubNoteRepo{findErr: errors.New("connection reset")})
	cache.Set(noteId, []*entity.DialogueSession{session})

	if err := repo.Save(context.Background(), uuid.New(), session); err == nil {
		t.Fatal("Save error = nil, want lookup error")
	}
	if _, found := cache.Get(noteId); found {
		t.Error("cache still holds sessions after failed Save")
	}
}

func TestDeleteDropsCacheWhenSessionMissing(t *testing.T) {
	noteId := uuid.New()
	session := entity.NewDialogueSession(noteId, "notes/remote-work.md", "note body", entity.DefaultIntensity)

	notes := &stubNoteRepo{note: &entity.Note{Id: noteId, Title: "Remote Work", Content: "note body"}}
	repo, cache := newSessionRepo(notes)
	cache.Set(noteId, []*entity.DialogueSession{session})

	err := repo.Delete(context.Background(), uuid.New(), noteId, "no-such-session")
	if !errors.Is(err, contract.ErrSessionNotFound) {
		t.Fatalf("Delete error = %v, want ErrSessionNotFound", err)
	}
	if _, found := cache.Get(noteId); found {
		t.Error("cache still holds sessions after failed Delete")
	}
	if notes.updated != 0 {
		t.Errorf("note updated %d times, want 0", notes.updated)
	}
}

func TestSaveRoundTripRefreshesReads(t *testing.T) {
	noteId := uuid.New()
	userId := uuid.New()
	session := entity.NewDialogueSession(noteId, "notes/remote-work.md", "note body", entity.DefaultIntensity)

	notes := &stubNoteRepo{note: &entity.Note{Id: noteId, UserId: userId, Title: "Remote Work", Content: "note body"}}
	repo, cache := newSessionRepo(notes)

	if err := repo.Save(context.Background(), userId, session); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if notes.updated != 1 {
		t.Fatalf("note updated %d times, want 1", notes.updated)
	}
	if _, found := cache.Get(noteId); found {
		t.Error("cache populated before any read")
	}

	sessions, err := repo.FindByNoteId(context.Background(), userId, noteId)
	if err != nil {
		t.Fatalf("FindByNoteId returned error: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Id != session.Id {
		t.Fatalf("FindByNoteId = %d sessions, want the saved one", len(sessions))
	}
}
