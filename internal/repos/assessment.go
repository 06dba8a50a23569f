package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

// AssessmentRepo is create/read only: assessments are immutable events.
type AssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Assessment) ([]*types.Assessment, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Assessment, error)
	ListByUserAndCompetency(ctx context.Context, tx *gorm.DB, userID, competencyID uuid.UUID) ([]*types.Assessment, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{db: db, log: baseLog.With("repo", "AssessmentRepo")}
}

func (r *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Assessment) ([]*types.Assessment, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Assessment{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assessmentRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Assessment, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Assessment
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("assessment_date DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assessmentRepo) ListByUserAndCompetency(ctx context.Context, tx *gorm.DB, userID, competencyID uuid.UUID) ([]*types.Assessment, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Assessment
	if userID == uuid.Nil || competencyID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ? AND competency_id = ?", userID, competencyID).
		Order("assessment_date DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
