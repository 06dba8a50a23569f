package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type ExpertNetworkMemberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ExpertNetworkMember) ([]*types.ExpertNetworkMember, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, networkID uuid.UUID) (bool, error)
	ListByNetworkID(ctx context.Context, tx *gorm.DB, networkID uuid.UUID) ([]*types.ExpertNetworkMember, error)
}

type expertNetworkMemberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpertNetworkMemberRepo(db *gorm.DB, baseLog *logger.Logger) ExpertNetworkMemberRepo {
	return &expertNetworkMemberRepo{db: db, log: baseLog.With("repo", "ExpertNetworkMemberRepo")}
}

func (r *expertNetworkMemberRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ExpertNetworkMember) ([]*types.ExpertNetworkMember, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ExpertNetworkMember{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *expertNetworkMemberRepo) Exists(ctx context.Context, tx *gorm.DB, userID, networkID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || networkID == uuid.Nil {
		return false, nil
	}
	var count int64
	if err := t.WithContext(ctx).
		Model(&types.ExpertNetworkMember{}).
		Where("user_id = ? AND network_id = ?", userID, networkID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *expertNetworkMemberRepo) ListByNetworkID(ctx context.Context, tx *gorm.DB, networkID uuid.UUID) ([]*types.ExpertNetworkMember, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ExpertNetworkMember
	if networkID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("network_id = ?", networkID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
