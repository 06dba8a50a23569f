package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type CompetencyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Competency) ([]*types.Competency, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Competency, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Competency, error)
	List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.Competency, error)
	ListByCategory(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) ([]*types.Competency, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Competency) error
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type competencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompetencyRepo(db *gorm.DB, baseLog *logger.Logger) CompetencyRepo {
	return &competencyRepo{db: db, log: baseLog.With("repo", "CompetencyRepo")}
}

func (r *competencyRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Competency) ([]*types.Competency, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Competency{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *competencyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Competency, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Competency
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *competencyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Competency, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *competencyRepo) List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.Competency, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []*types.Competency
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *competencyRepo) ListByCategory(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) ([]*types.Competency, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Competency
	if categoryID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *competencyRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Competency) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *competencyRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.Competency{}).
		Where("id = ?", id).
		Updates(updates).Error
}
