package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ModuleStatus string

const (
	ModuleDraft     ModuleStatus = "draft"
	ModuleSubmitted ModuleStatus = "submitted"
	ModulePublished ModuleStatus = "published"
	ModuleReturned  ModuleStatus = "returned"
)

// CanTransitionModule: draft -> submitted -> published | returned.
// A returned module may be resubmitted.
func CanTransitionModule(from, to ModuleStatus) bool {
	switch from {
	case ModuleDraft:
		return to == ModuleSubmitted
	case ModuleSubmitted:
		return to == ModulePublished || to == ModuleReturned
	case ModuleReturned:
		return to == ModuleSubmitted
	}
	return false
}

type TrainingModule struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Content      string         `gorm:"column:content" json:"content,omitempty"`
	CompetencyID *uuid.UUID     `gorm:"type:uuid;index" json:"competency_id,omitempty"`
	Status       ModuleStatus   `gorm:"column:status;not null;default:'draft';index" json:"status"`
	SubmittedBy  uuid.UUID      `gorm:"type:uuid;column:submitted_by;not null;index" json:"submitted_by"`
	SubmittedAt  *time.Time     `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ReviewedBy   *uuid.UUID     `gorm:"type:uuid;column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time     `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	ReviewNotes  string         `gorm:"column:review_notes" json:"review_notes,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TrainingModule) TableName() string { return "training_module" }
