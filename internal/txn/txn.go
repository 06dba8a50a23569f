package txn

import (
	"context"

	"gorm.io/gorm"
)

// Runner provides the per-item transaction boundary used by batch operations:
// each item's multi-write sequence commits or rolls back as a unit, without
// coupling sibling items.
type Runner interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormRunner struct {
	db *gorm.DB
}

func NewGormRunner(db *gorm.DB) Runner {
	return &gormRunner{db: db}
}

func (r *gormRunner) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(fn)
}
