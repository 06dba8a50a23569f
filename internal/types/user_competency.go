package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserCompetencyStatus string

const (
	UserCompetencyNotStarted UserCompetencyStatus = "not_started"
	UserCompetencyAssigned   UserCompetencyStatus = "assigned"
	UserCompetencyInProgress UserCompetencyStatus = "in_progress"
	UserCompetencyAchieved   UserCompetencyStatus = "achieved"
)

// DeriveUserCompetencyStatus is the single authority for the achieved vs
// in_progress decision after an assessment or validation.
func DeriveUserCompetencyStatus(currentLevel, targetLevel int) UserCompetencyStatus {
	if currentLevel >= targetLevel {
		return UserCompetencyAchieved
	}
	return UserCompetencyInProgress
}

// UserCompetency links a trainee to a competency. The unique index on
// (user_id, competency_id) is the authoritative duplicate guard; the
// application-level existence check is a fast path only.
type UserCompetency struct {
	ID                 uuid.UUID            `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID            `gorm:"type:uuid;not null;index:idx_user_competency,unique,priority:1" json:"user_id"`
	User               *User                `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CompetencyID       uuid.UUID            `gorm:"type:uuid;not null;index:idx_user_competency,unique,priority:2" json:"competency_id"`
	Competency         *Competency          `gorm:"constraint:OnDelete:CASCADE;foreignKey:CompetencyID;references:ID" json:"competency,omitempty"`
	CurrentLevel       int                  `gorm:"column:current_level;not null;default:0" json:"current_level"`
	TargetLevel        int                  `gorm:"column:target_level;not null" json:"target_level"`
	Status             UserCompetencyStatus `gorm:"column:status;not null;default:'not_started';index" json:"status"`
	TargetDate         *time.Time           `gorm:"column:target_date" json:"target_date,omitempty"`
	LastAssessmentDate *time.Time           `gorm:"column:last_assessment_date" json:"last_assessment_date,omitempty"`
	CreatedAt          time.Time            `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time            `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt       `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserCompetency) TableName() string { return "user_competency" }
