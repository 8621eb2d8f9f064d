package contract

import (
	"context"

	"socratic-notes-be/internal/entity"
	"socratic-notes-be/internal/repository/specification"
)

type DialogueActivityRepository interface {
	Create(ctx context.Context, activity *entity.DialogueActivity) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DialogueActivity, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
