package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DialogueActivity is the audit trail of dialogue lifecycle events.
type DialogueActivity struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NoteId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	SessionId string         `gorm:"type:varchar(100);not null;index"`
	Kind      string         `gorm:"type:varchar(50);not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"default:now();not null;index"`
}

func (DialogueActivity) TableName() string {
	return "dialogue_activities"
}
