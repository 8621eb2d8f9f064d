package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityByNoteID struct {
	NoteID uuid.UUID
}

func (s ActivityByNoteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("note_id = ?", s.NoteID)
}

type ActivityBySessionID struct {
	SessionID string
}

func (s ActivityBySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ActivityByKind struct {
	Kind string
}

func (s ActivityByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}
