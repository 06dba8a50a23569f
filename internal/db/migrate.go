package db

import (
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity + auth
		// =========================
		&types.User{},
		&types.UserToken{},

		// =========================
		// Competency catalog
		// =========================
		&types.CompetencyCategory{},
		&types.Competency{},

		// =========================
		// Lifecycle engine
		// =========================
		&types.UserCompetency{},
		&types.DevelopmentActivity{},
		&types.ActivityFeedback{},
		&types.Assessment{},

		// =========================
		// Expert network
		// =========================
		&types.ExpertNetwork{},
		&types.ExpertNomination{},
		&types.ExpertNetworkMember{},

		// =========================
		// Training content + notifications
		// =========================
		&types.TrainingModule{},
		&types.Notification{},
	)
}
