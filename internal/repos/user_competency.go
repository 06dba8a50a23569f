package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type UserCompetencyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserCompetency) ([]*types.UserCompetency, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.UserCompetency, error)
	GetByUserAndCompetency(ctx context.Context, tx *gorm.DB, userID, competencyID uuid.UUID) (*types.UserCompetency, error)
	ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserCompetency, error)
	ListByCompetencyID(ctx context.Context, tx *gorm.DB, competencyID uuid.UUID) ([]*types.UserCompetency, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type userCompetencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserCompetencyRepo(db *gorm.DB, baseLog *logger.Logger) UserCompetencyRepo {
	return &userCompetencyRepo{db: db, log: baseLog.With("repo", "UserCompetencyRepo")}
}

func (r *userCompetencyRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserCompetency) ([]*types.UserCompetency, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.UserCompetency{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userCompetencyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.UserCompetency, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.UserCompetency
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

func (r *userCompetencyRepo) GetByUserAndCompetency(ctx context.Context, tx *gorm.DB, userID, competencyID uuid.UUID) (*types.UserCompetency, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || competencyID == uuid.Nil {
		return nil, nil
	}
	var out []*types.UserCompetency
	if err := t.WithContext(ctx).
		Where("user_id = ? AND competency_id = ?", userID, competencyID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *userCompetencyRepo) ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserCompetency, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.UserCompetency
	if len(userIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("user_id ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userCompetencyRepo) ListByCompetencyID(ctx context.Context, tx *gorm.DB, competencyID uuid.UUID) ([]*types.UserCompetency, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.UserCompetency
	if competencyID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("competency_id = ?", competencyID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userCompetencyRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.UserCompetency{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *userCompetencyRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.UserCompetency{}).Error
}
