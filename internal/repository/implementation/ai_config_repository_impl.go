package implementation

import (
	"context"
	"errors"

	"socratic-notes-be/internal/entity"
	"socratic-notes-be/internal/mapper"
	"socratic-notes-be/internal/model"
	"socratic-notes-be/internal/repository/contract"
	"socratic-notes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type aiConfigRepository struct {
	db     *gorm.DB
	mapper *mapper.AiConfigMapper
}

// NewAiConfigRepository creates a new AI config repository
func NewAiConfigRepository(db *gorm.DB) contract.IAiConfigRepository {
	return &aiConfigRepository{
		db:     db,
		mapper: mapper.NewAiConfigMapper(),
	}
}

func (r *aiConfigRepository) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *aiConfigRepository) FindAllConfigurations(ctx context.Context, specs ...specification.Specification) ([]*entity.AiConfiguration, error) {
	var models []*model.AiConfiguration
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *aiConfigRepository) FindConfigurationByKey(ctx context.Context, key string) (*entity.AiConfiguration, error) {
	var m model.AiConfiguration
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *aiConfigRepository) UpdateConfiguration(ctx context.Context, config *entity.AiConfiguration) error {
	m := r.mapper.ToModel(config)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *aiConfigRepository) CreateConfiguration(ctx context.Context, config *entity.AiConfiguration) error {
	if config.Id == uuid.Nil {
		config.Id = uuid.New()
	}
	m := r.mapper.ToModel(config)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	config.Id = m.Id
	return nil
}
