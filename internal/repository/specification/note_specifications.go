package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteOwnedByUser scopes queries to the caller's notes. Every note access
// path goes through this.
type NoteOwnedByUser struct {
	UserID uuid.UUID
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

// TitleContains does a case-insensitive substring match on the note title.
type TitleContains struct {
	Query string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Query+"%")
}
