package memory

import (
	"time"

	"socratic-notes-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DialogueCache keeps parsed dialogue sessions per note so repeated reads do
// not re-parse the note content. Entries are invalidated on every write to the
// note and expire on their own as a safety net.
type DialogueCache struct {
	cache *cache.Cache
}

func NewDialogueCache() *DialogueCache {
	// Default expiration of 15 minutes, purge sweep every 5.
	c := cache.New(15*time.Minute, 5*time.Minute)
	return &DialogueCache{
		cache: c,
	}
}

func (r *DialogueCache) Set(noteId uuid.UUID, sessions []*entity.DialogueSession) {
	r.cache.Set(noteId.String(), sessions, cache.DefaultExpiration)
}

func (r *DialogueCache) Get(noteId uuid.UUID) ([]*entity.DialogueSession, bool) {
	if x, found := r.cache.Get(noteId.String()); found {
		return x.([]*entity.DialogueSession), true
	}
	return nil, false
}

func (r *DialogueCache) Invalidate(noteId uuid.UUID) {
	r.cache.Delete(noteId.String())
}
