package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpertNetwork groups validated subject matter experts for one competency.
type ExpertNetwork struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompetencyID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"competency_id"`
	Competency   *Competency    `gorm:"constraint:OnDelete:CASCADE;foreignKey:CompetencyID;references:ID" json:"competency,omitempty"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ExpertNetwork) TableName() string { return "expert_network" }

type ExpertNetworkMember struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_network_member,unique,priority:1" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	NetworkID uuid.UUID      `gorm:"type:uuid;not null;index:idx_network_member,unique,priority:2" json:"network_id"`
	Network   *ExpertNetwork `gorm:"constraint:OnDelete:CASCADE;foreignKey:NetworkID;references:ID" json:"network,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (ExpertNetworkMember) TableName() string { return "expert_network_member" }
