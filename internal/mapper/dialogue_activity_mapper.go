package mapper

import (
	"encoding/json"

	"socratic-notes-be/internal/entity"
	"socratic-notes-be/internal/model"

	"gorm.io/datatypes"
)

type DialogueActivityMapper struct{}

func NewDialogueActivityMapper() *DialogueActivityMapper {
	return &DialogueActivityMapper{}
}

func (m *DialogueActivityMapper) ToEntity(a *model.DialogueActivity) *entity.DialogueActivity {
	if a == nil {
		return nil
	}

	var payload map[string]interface{}
	if len(a.Payload) > 0 {
		if err := json.Unmarshal(a.Payload, &payload); err != nil {
			payload = nil
		}
	}

	return &entity.DialogueActivity{
		Id:        a.Id,
		NoteId:    a.NoteId,
		SessionId: a.SessionId,
		Kind:      a.Kind,
		Payload:   payload,
		CreatedAt: a.CreatedAt,
	}
}

func (m *DialogueActivityMapper) ToModel(a *entity.DialogueActivity) *model.DialogueActivity {
	if a == nil {
		return nil
	}

	var payload datatypes.JSON
	if a.Payload != nil {
		if raw, err := json.Marshal(a.Payload); err == nil {
			payload = datatypes.JSON(raw)
		}
	}

	return &model.DialogueActivity{
		Id:        a.Id,
		NoteId:    a.NoteId,
		SessionId: a.SessionId,
		Kind:      a.Kind,
		Payload:   payload,
		CreatedAt: a.CreatedAt,
	}
}

func (m *DialogueActivityMapper) ToEntities(activities []*model.DialogueActivity) []*entity.DialogueActivity {
	entities := make([]*entity.DialogueActivity, len(activities))
	for i, a := range activities {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
