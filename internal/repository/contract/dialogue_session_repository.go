package contract

import (
	"context"
	"errors"

	"socratic-notes-be/internal/entity"

	"github.com/google/uuid"
)

var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrSessionNotFound = errors.New("dialogue session not found")
)

// DialogueSessionRepository persists dialogue sessions inside the content of
// the note they belong to. Sessions have no table of their own: Save rewrites
// the embedded block in the note document, FindByNoteId parses the blocks back
// out.
type DialogueSessionRepository interface {
	// Save upserts the session block into the note content and persists the
	// note. Last save wins.
	Save(ctx context.Context, userId uuid.UUID, session *entity.DialogueSession) error

	// FindByNoteId returns every session embedded in the note, most recent
	// first.
	FindByNoteId(ctx context.Context, userId, noteId uuid.UUID) ([]*entity.DialogueSession, error)

	// FindLatest returns the most recently created session in the note, or
	// ErrSessionNotFound when the note has none.
	FindLatest(ctx context.Context, userId, noteId uuid.UUID) (*entity.DialogueSession, error)

	// FindById returns the session with the given id, or ErrSessionNotFound.
	FindById(ctx context.Context, userId, noteId uuid.UUID, sessionId string) (*entity.DialogueSession, error)

	// Delete removes the session block from the note content. Removing the
	// last session also removes the dialogue section heading.
	Delete(ctx context.Context, userId, noteId uuid.UUID, sessionId string) error
}
