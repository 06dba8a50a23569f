package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type TrainingModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.TrainingModule) ([]*types.TrainingModule, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TrainingModule, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, statuses []types.ModuleStatus) ([]*types.TrainingModule, error)
	ListBySubmitter(ctx context.Context, tx *gorm.DB, submittedBy uuid.UUID) ([]*types.TrainingModule, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type trainingModuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrainingModuleRepo(db *gorm.DB, baseLog *logger.Logger) TrainingModuleRepo {
	return &trainingModuleRepo{db: db, log: baseLog.With("repo", "TrainingModuleRepo")}
}

func (r *trainingModuleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.TrainingModule) ([]*types.TrainingModule, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.TrainingModule{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *trainingModuleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TrainingModule, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.TrainingModule
	if err := t.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *trainingModuleRepo) ListByStatus(ctx context.Context, tx *gorm.DB, statuses []types.ModuleStatus) ([]*types.TrainingModule, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.TrainingModule
	if len(statuses) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *trainingModuleRepo) ListBySubmitter(ctx context.Context, tx *gorm.DB, submittedBy uuid.UUID) ([]*types.TrainingModule, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.TrainingModule
	if submittedBy == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("submitted_by = ?", submittedBy).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *trainingModuleRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.TrainingModule{}).
		Where("id = ?", id).
		Updates(updates).Error
}
