package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NominationStatus string

const (
	NominationPending  NominationStatus = "pending"
	NominationApproved NominationStatus = "approved"
	NominationRejected NominationStatus = "rejected"
)

func CanTransitionNomination(from, to NominationStatus) bool {
	return from == NominationPending &&
		(to == NominationApproved || to == NominationRejected)
}

type ExpertRole string

const (
	// ExpertRoleFSME is a factory/site-local subject matter expert.
	ExpertRoleFSME ExpertRole = "fsme"
	// ExpertRoleGSME is a global subject matter expert.
	ExpertRoleGSME ExpertRole = "gsme"
)

// DefaultExpertRole proposes gsme for level 5 performers, fsme otherwise.
func DefaultExpertRole(currentLevel int) ExpertRole {
	if currentLevel >= LevelMax {
		return ExpertRoleGSME
	}
	return ExpertRoleFSME
}

type ExpertNomination struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User            `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	NominatedBy  uuid.UUID        `gorm:"type:uuid;column:nominated_by;not null" json:"nominated_by"`
	CompetencyID uuid.UUID        `gorm:"type:uuid;not null;index" json:"competency_id"`
	Competency   *Competency      `gorm:"constraint:OnDelete:CASCADE;foreignKey:CompetencyID;references:ID" json:"competency,omitempty"`
	// NetworkID is nil when the competency has no expert network yet.
	NetworkID    *uuid.UUID       `gorm:"type:uuid;index" json:"network_id,omitempty"`
	Network      *ExpertNetwork   `gorm:"foreignKey:NetworkID;references:ID" json:"network,omitempty"`
	CurrentLevel int              `gorm:"column:current_level;not null" json:"current_level"`
	ProposedRole ExpertRole       `gorm:"column:proposed_role;not null" json:"proposed_role"`
	Status       NominationStatus `gorm:"column:status;not null;default:'pending';index" json:"status"`
	SiteName     string           `gorm:"column:site_name" json:"site_name,omitempty"`
	Notes        string           `gorm:"column:notes" json:"notes,omitempty"`
	DecidedBy    *uuid.UUID       `gorm:"type:uuid;column:decided_by" json:"decided_by,omitempty"`
	DecidedAt    *time.Time       `gorm:"column:decided_at" json:"decided_at,omitempty"`
	CreatedAt    time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (ExpertNomination) TableName() string { return "expert_nomination" }
