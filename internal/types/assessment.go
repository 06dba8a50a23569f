package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AssessmentStatus string

const (
	AssessmentPending   AssessmentStatus = "pending"
	AssessmentValidated AssessmentStatus = "validated"
)

// Assessment is one record per assessment event (not per level). Immutable
// once created.
type Assessment struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CompetencyID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"competency_id"`
	AssessedBy     uuid.UUID        `gorm:"type:uuid;column:assessed_by;not null" json:"assessed_by"`
	AssessmentDate time.Time        `gorm:"column:assessment_date;not null;default:now()" json:"assessment_date"`
	LevelAchieved  int              `gorm:"column:level_achieved;not null" json:"level_achieved"`
	// CriteriaResults keeps the raw per-level pass/fail map for audit.
	CriteriaResults datatypes.JSON   `gorm:"type:jsonb;column:criteria_results" json:"criteria_results,omitempty"`
	Notes           string           `gorm:"column:notes" json:"notes,omitempty"`
	Status          AssessmentStatus `gorm:"column:status;not null;default:'validated';index" json:"status"`
	CreatedAt       time.Time        `gorm:"not null;default:now()" json:"created_at"`
}

func (Assessment) TableName() string { return "assessment" }
