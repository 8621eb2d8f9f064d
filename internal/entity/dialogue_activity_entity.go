package entity

import (
	"time"

	"github.com/google/uuid"
)

// Dialogue activity kinds, written by the background consumer.
const (
	ActivitySessionStarted    = "SESSION_STARTED"
	ActivityResponseRecorded  = "RESPONSE_RECORDED"
	ActivityInsightsExtracted = "INSIGHTS_EXTRACTED"
	ActivitySessionDeleted    = "SESSION_DELETED"
)

// DialogueActivity is one audit-trail row for a dialogue lifecycle event.
type DialogueActivity struct {
	Id        uuid.UUID
	NoteId    uuid.UUID
	SessionId string
	Kind      string
	Payload   map[string]interface{}
	CreatedAt time.Time
}
