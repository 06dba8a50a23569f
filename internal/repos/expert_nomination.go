package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type ExpertNominationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ExpertNomination) ([]*types.ExpertNomination, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ExpertNomination, error)
	HasPending(ctx context.Context, tx *gorm.DB, userID, competencyID uuid.UUID) (bool, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status types.NominationStatus) ([]*types.ExpertNomination, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ExpertNomination, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type expertNominationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpertNominationRepo(db *gorm.DB, baseLog *logger.Logger) ExpertNominationRepo {
	return &expertNominationRepo{db: db, log: baseLog.With("repo", "ExpertNominationRepo")}
}

func (r *expertNominationRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ExpertNomination) ([]*types.ExpertNomination, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ExpertNomination{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *expertNominationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ExpertNomination, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.ExpertNomination
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

func (r *expertNominationRepo) HasPending(ctx context.Context, tx *gorm.DB, userID, competencyID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || competencyID == uuid.Nil {
		return false, nil
	}
	var count int64
	if err := t.WithContext(ctx).
		Model(&types.ExpertNomination{}).
		Where("user_id = ? AND competency_id = ? AND status = ?", userID, competencyID, types.NominationPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *expertNominationRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status types.NominationStatus) ([]*types.ExpertNomination, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ExpertNomination
	if err := t.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *expertNominationRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ExpertNomination, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ExpertNomination
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *expertNominationRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.ExpertNomination{}).
		Where("id = ?", id).
		Updates(updates).Error
}
