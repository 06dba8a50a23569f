package types

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackRole string

const (
	FeedbackRoleCoach   FeedbackRole = "coach"
	FeedbackRoleCoachee FeedbackRole = "coachee"
	FeedbackRoleOther   FeedbackRole = "other"
)

type FeedbackType string

const (
	FeedbackProgress  FeedbackType = "progress"
	FeedbackMilestone FeedbackType = "milestone"
)

// ActivityFeedback is an append-only thread entry on a development activity.
// Rows are never edited or deleted.
type ActivityFeedback struct {
	ID           uuid.UUID            `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ActivityID   uuid.UUID            `gorm:"type:uuid;not null;index" json:"activity_id"`
	Activity     *DevelopmentActivity `gorm:"constraint:OnDelete:CASCADE;foreignKey:ActivityID;references:ID" json:"activity,omitempty"`
	AuthorID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorRole   FeedbackRole         `gorm:"column:author_role;not null" json:"author_role"`
	FeedbackType FeedbackType         `gorm:"column:feedback_type;not null;default:'progress'" json:"feedback_type"`
	Content      string               `gorm:"column:content;not null" json:"content"`
	CreatedAt    time.Time            `gorm:"not null;default:now()" json:"created_at"`
}

func (ActivityFeedback) TableName() string { return "activity_feedback" }
