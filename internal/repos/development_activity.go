package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type DevelopmentActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.DevelopmentActivity) ([]*types.DevelopmentActivity, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DevelopmentActivity, error)
	ListByTraineeID(ctx context.Context, tx *gorm.DB, traineeID uuid.UUID) ([]*types.DevelopmentActivity, error)
	ListByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID, statuses []types.ActivityStatus) ([]*types.DevelopmentActivity, error)
	ListByTraineeAndCompetency(ctx context.Context, tx *gorm.DB, traineeID, competencyID uuid.UUID) ([]*types.DevelopmentActivity, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type developmentActivityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDevelopmentActivityRepo(db *gorm.DB, baseLog *logger.Logger) DevelopmentActivityRepo {
	return &developmentActivityRepo{db: db, log: baseLog.With("repo", "DevelopmentActivityRepo")}
}

func (r *developmentActivityRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.DevelopmentActivity) ([]*types.DevelopmentActivity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.DevelopmentActivity{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *developmentActivityRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DevelopmentActivity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.DevelopmentActivity
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

func (r *developmentActivityRepo) ListByTraineeID(ctx context.Context, tx *gorm.DB, traineeID uuid.UUID) ([]*types.DevelopmentActivity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.DevelopmentActivity
	if traineeID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("trainee_id = ?", traineeID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *developmentActivityRepo) ListByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID, statuses []types.ActivityStatus) ([]*types.DevelopmentActivity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.DevelopmentActivity
	if coachID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(ctx).Where("coach_id = ?", coachID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *developmentActivityRepo) ListByTraineeAndCompetency(ctx context.Context, tx *gorm.DB, traineeID, competencyID uuid.UUID) ([]*types.DevelopmentActivity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.DevelopmentActivity
	if traineeID == uuid.Nil || competencyID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("trainee_id = ? AND competency_id = ?", traineeID, competencyID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *developmentActivityRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.DevelopmentActivity{}).
		Where("id = ?", id).
		Updates(updates).Error
}
