package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Proficiency levels run 1..5 (Awareness -> Expert). Level 0 on an assignment
// means "not yet competent".
const (
	LevelMin = 1
	LevelMax = 5
)

type CompetencyCategory struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CompetencyCategory) TableName() string { return "competency_category" }

type Competency struct {
	ID         uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name       string              `gorm:"column:name;not null;index" json:"name"`
	CategoryID *uuid.UUID          `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *CompetencyCategory `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	// OwnerID is the default coach when an assignment carries none.
	OwnerID     uuid.UUID `gorm:"type:uuid;column:owner_id;index" json:"owner_id"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	// Per-level rubric text, level 1..5.
	Level1Rubric string         `gorm:"column:level1_rubric" json:"level1_rubric,omitempty"`
	Level2Rubric string         `gorm:"column:level2_rubric" json:"level2_rubric,omitempty"`
	Level3Rubric string         `gorm:"column:level3_rubric" json:"level3_rubric,omitempty"`
	Level4Rubric string         `gorm:"column:level4_rubric" json:"level4_rubric,omitempty"`
	Level5Rubric string         `gorm:"column:level5_rubric" json:"level5_rubric,omitempty"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Competency) TableName() string { return "competency" }

// RubricForLevel returns the rubric text for a level, empty if out of range.
func (c *Competency) RubricForLevel(level int) string {
	switch level {
	case 1:
		return c.Level1Rubric
	case 2:
		return c.Level2Rubric
	case 3:
		return c.Level3Rubric
	case 4:
		return c.Level4Rubric
	case 5:
		return c.Level5Rubric
	}
	return ""
}
