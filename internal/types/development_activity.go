package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityCoaching        ActivityType = "coaching"
	ActivityValidationAudit ActivityType = "validation_audit"
)

type ActivityStatus string

const (
	ActivityPending    ActivityStatus = "pending"
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityCompleted  ActivityStatus = "completed"
	ActivityValidated  ActivityStatus = "validated"
	ActivityCancelled  ActivityStatus = "cancelled"
)

// CanTransitionActivity is the single transition authority for the coaching
// state machine: pending -> in_progress -> completed -> validated, with
// cancelled reachable from any non-terminal state.
func CanTransitionActivity(from, to ActivityStatus) bool {
	switch from {
	case ActivityPending:
		return to == ActivityInProgress || to == ActivityCompleted || to == ActivityCancelled
	case ActivityInProgress:
		return to == ActivityCompleted || to == ActivityCancelled
	case ActivityCompleted:
		return to == ActivityValidated || to == ActivityCancelled
	}
	return false
}

func (s ActivityStatus) Terminal() bool {
	return s == ActivityValidated || s == ActivityCancelled
}

// DevelopmentActivity is a coaching engagement or a validation audit record
// attached to a user competency assignment.
type DevelopmentActivity struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Type            ActivityType   `gorm:"column:type;not null;index" json:"type"`
	TraineeID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"trainee_id"`
	Trainee         *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:TraineeID;references:ID" json:"trainee,omitempty"`
	CoachID         uuid.UUID      `gorm:"type:uuid;index" json:"coach_id"`
	AssignedBy      uuid.UUID      `gorm:"type:uuid;column:assigned_by" json:"assigned_by"`
	CompetencyID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"competency_id"`
	Competency      *Competency    `gorm:"constraint:OnDelete:CASCADE;foreignKey:CompetencyID;references:ID" json:"competency,omitempty"`
	TargetLevel     int            `gorm:"column:target_level;not null" json:"target_level"`
	Status          ActivityStatus `gorm:"column:status;not null;default:'pending';index" json:"status"`
	DueDate         *time.Time     `gorm:"column:due_date" json:"due_date,omitempty"`
	Objectives      string         `gorm:"column:objectives" json:"objectives,omitempty"`
	SuccessCriteria string         `gorm:"column:success_criteria" json:"success_criteria,omitempty"`
	CompletedAt     *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	ValidatedAt     *time.Time     `gorm:"column:validated_at" json:"validated_at,omitempty"`
	ValidatedBy     *uuid.UUID     `gorm:"type:uuid;column:validated_by" json:"validated_by,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DevelopmentActivity) TableName() string { return "development_activity" }
