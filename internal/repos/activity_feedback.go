package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

// ActivityFeedbackRepo has no update or delete: the thread is append-only.
type ActivityFeedbackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ActivityFeedback) ([]*types.ActivityFeedback, error)
	ListByActivityID(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) ([]*types.ActivityFeedback, error)
}

type activityFeedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) ActivityFeedbackRepo {
	return &activityFeedbackRepo{db: db, log: baseLog.With("repo", "ActivityFeedbackRepo")}
}

func (r *activityFeedbackRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ActivityFeedback) ([]*types.ActivityFeedback, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ActivityFeedback{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *activityFeedbackRepo) ListByActivityID(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) ([]*types.ActivityFeedback, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ActivityFeedback
	if activityID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
