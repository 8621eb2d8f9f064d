package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is the host document a dialogue session is embedded into.
type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// Path is the human-facing locator stored alongside a session (note id and
// path coincide in this domain; the title doubles as the display path).
func (n *Note) Path() string {
	return n.Title
}
