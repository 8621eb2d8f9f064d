package implementation

import (
	"context"

	"socratic-notes-be/internal/entity"
	"socratic-notes-be/internal/mapper"
	"socratic-notes-be/internal/model"
	"socratic-notes-be/internal/repository/contract"
	"socratic-notes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DialogueActivityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DialogueActivityMapper
}

func NewDialogueActivityRepository(db *gorm.DB) contract.DialogueActivityRepository {
	return &DialogueActivityRepositoryImpl{
		db:     db,
		mapper: mapper.NewDialogueActivityMapper(),
	}
}

func (r *DialogueActivityRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DialogueActivityRepositoryImpl) Create(ctx context.Context, activity *entity.DialogueActivity) error {
	if activity.Id == uuid.Nil {
		activity.Id = uuid.New()
	}
	m := r.mapper.ToModel(activity)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*activity = *r.mapper.ToEntity(m)
	return nil
}

func (r *DialogueActivityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DialogueActivity, error) {
	var models []*model.DialogueActivity
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DialogueActivityRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DialogueActivity{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
