package entity

import (
	"time"

	"github.com/google/uuid"
)

// AiConfiguration stores tunable AI behavior settings (key-value pairs).
type AiConfiguration struct {
	Id          uuid.UUID
	Key         string
	Value       string
	ValueType   string
	Description string
	Category    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
