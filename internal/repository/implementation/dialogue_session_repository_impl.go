package implementation

import (
	"context"
	"sort"

	"socratic-notes-be/internal/entity"
	"socratic-notes-be/internal/repository/contract"
	"socratic-notes-be/internal/repository/memory"
	"socratic-notes-be/internal/repository/specification"
	"socratic-notes-be/pkg/dialogue"

	"github.com/google/uuid"
)

// DialogueSessionRepositoryImpl stores sessions as embedded blocks inside the
// note content. Every write is a read-modify-write of the note row inside a
// transaction.
type DialogueSessionRepositoryImpl struct {
	uowFactory contract.RepositoryFactory
	cache      *memory.DialogueCache
}

func NewDialogueSessionRepository(uowFactory contract.RepositoryFactory, cache *memory.DialogueCache) contract.DialogueSessionRepository {
	return &DialogueSessionRepositoryImpl{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (r *DialogueSessionRepositoryImpl) Save(ctx context.Context, userId uuid.UUID, session *entity.DialogueSession) error {
	// Callers mutate sessions handed out from the cache before saving, so the
	// cached slice is stale either way. Drop it up front; if the write fails
	// the next read rebuilds from the persisted note instead of serving the
	// mutated copy.
	r.cache.Invalidate(session.NoteId)

	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: session.NoteId},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return contract.ErrNoteNotFound
	}

	updated, err := dialogue.Upsert(note.Content, session)
	if err != nil {
		return err
	}
	note.Content = updated

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	r.cache.Invalidate(session.NoteId)
	return nil
}

func (r *DialogueSessionRepositoryImpl) FindByNoteId(ctx context.Context, userId, noteId uuid.UUID) ([]*entity.DialogueSession, error) {
	if sessions, found := r.cache.Get(noteId); found {
		return sessions, nil
	}

	note, err := r.loadNote(ctx, userId, noteId)
	if err != nil {
		return nil, err
	}

	sessions := dialogue.ExtractSessions(note.Content, note.Content)
	sortSessionsNewestFirst(sessions)

	r.cache.Set(noteId, sessions)
	return sessions, nil
}

func (r *DialogueSessionRepositoryImpl) FindLatest(ctx context.Context, userId, noteId uuid.UUID) (*entity.DialogueSession, error) {
	sessions, err := r.FindByNoteId(ctx, userId, noteId)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, contract.ErrSessionNotFound
	}
	return sessions[0], nil
}

func (r *DialogueSessionRepositoryImpl) FindById(ctx context.Context, userId, noteId uuid.UUID, sessionId string) (*entity.DialogueSession, error) {
	sessions, err := r.FindByNoteId(ctx, userId, noteId)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if s.Id == sessionId {
			return s, nil
		}
	}
	return nil, contract.ErrSessionNotFound
}

func (r *DialogueSessionRepositoryImpl) Delete(ctx context.Context, userId, noteId uuid.UUID, sessionId string) error {
	r.cache.Invalidate(noteId)

	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return contract.ErrNoteNotFound
	}

	updated, removed := dialogue.Remove(note.Content, sessionId)
	if !removed {
		return contract.ErrSessionNotFound
	}
	note.Content = updated

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	r.cache.Invalidate(noteId)
	return nil
}

func (r *DialogueSessionRepositoryImpl) loadNote(ctx context.Context, userId, noteId uuid.UUID) (*entity.Note, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
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

func sortSessionsNewestFirst(sessions []*entity.DialogueSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
}
