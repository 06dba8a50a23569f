package app

import (
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/repos"
)

type Repos struct {
	User                repos.UserRepo
	UserToken           repos.UserTokenRepo
	CompetencyCategory  repos.CompetencyCategoryRepo
	Competency          repos.CompetencyRepo
	UserCompetency      repos.UserCompetencyRepo
	DevelopmentActivity repos.DevelopmentActivityRepo
	ActivityFeedback    repos.ActivityFeedbackRepo
	Assessment          repos.AssessmentRepo
	ExpertNetwork       repos.ExpertNetworkRepo
	ExpertNetworkMember repos.ExpertNetworkMemberRepo
	ExpertNomination    repos.ExpertNominationRepo
	TrainingModule      repos.TrainingModuleRepo
	Notification        repos.NotificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:                repos.NewUserRepo(db, log),
		UserToken:           repos.NewUserTokenRepo(db, log),
		CompetencyCategory:  repos.NewCompetencyCategoryRepo(db, log),
		Competency:          repos.NewCompetencyRepo(db, log),
		UserCompetency:      repos.NewUserCompetencyRepo(db, log),
		DevelopmentActivity: repos.NewDevelopmentActivityRepo(db, log),
		ActivityFeedback:    repos.NewActivityFeedbackRepo(db, log),
		Assessment:          repos.NewAssessmentRepo(db, log),
		ExpertNetwork:       repos.NewExpertNetworkRepo(db, log),
		ExpertNetworkMember: repos.NewExpertNetworkMemberRepo(db, log),
		ExpertNomination:    repos.NewExpertNominationRepo(db, log),
		TrainingModule:      repos.NewTrainingModuleRepo(db, log),
		Notification:        repos.NewNotificationRepo(db, log),
	}
}
