package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type ExpertNetworkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ExpertNetwork) ([]*types.ExpertNetwork, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ExpertNetwork, error)
	GetByCompetencyID(ctx context.Context, tx *gorm.DB, competencyID uuid.UUID) (*types.ExpertNetwork, error)
	List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.ExpertNetwork, error)
}

type expertNetworkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpertNetworkRepo(db *gorm.DB, baseLog *logger.Logger) ExpertNetworkRepo {
	return &expertNetworkRepo{db: db, log: baseLog.With("repo", "ExpertNetworkRepo")}
}

func (r *expertNetworkRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ExpertNetwork) ([]*types.ExpertNetwork, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ExpertNetwork{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *expertNetworkRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ExpertNetwork, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.ExpertNetwork
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

func (r *expertNetworkRepo) GetByCompetencyID(ctx context.Context, tx *gorm.DB, competencyID uuid.UUID) (*types.ExpertNetwork, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if competencyID == uuid.Nil {
		return nil, nil
	}
	var out []*types.ExpertNetwork
	if err := t.WithContext(ctx).
		Where("competency_id = ?", competencyID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *expertNetworkRepo) List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.ExpertNetwork, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []*types.ExpertNetwork
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
