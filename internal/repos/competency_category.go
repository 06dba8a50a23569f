package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type CompetencyCategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.CompetencyCategory) ([]*types.CompetencyCategory, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.CompetencyCategory, error)
}

type competencyCategoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompetencyCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CompetencyCategoryRepo {
	return &competencyCategoryRepo{db: db, log: baseLog.With("repo", "CompetencyCategoryRepo")}
}

func (r *competencyCategoryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.CompetencyCategory) ([]*types.CompetencyCategory, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.CompetencyCategory{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *competencyCategoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CompetencyCategory, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.CompetencyCategory
	if err := t.WithContext(ctx).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
