package app

import (
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/services"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/sse"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/txn"
)

type Services struct {
	Notifier   services.Notifier
	Auth       services.AuthService
	User       services.UserService
	Competency services.CompetencyService
	Assignment services.AssignmentService
	Coaching   services.CoachingService
	Assessment services.AssessmentService
	Validation services.ValidationService
	Nomination services.NominationService
	Review     services.ReviewService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, hub *sse.SSEHub) Services {
	log.Info("Wiring services...")
	runner := txn.NewGormRunner(db)
	notifier := services.NewNotifier(log, hub, r.Notification)
	return Services{
		Notifier:   notifier,
		Auth:       services.NewAuthService(db, log, r.User, r.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:       services.NewUserService(log, r.User, r.Notification),
		Competency: services.NewCompetencyService(log, r.Competency, r.CompetencyCategory),
		Assignment: services.NewAssignmentService(runner, log, r.Competency, r.UserCompetency, r.DevelopmentActivity, notifier),
		Coaching:   services.NewCoachingService(runner, log, r.DevelopmentActivity, r.ActivityFeedback, notifier),
		Assessment: services.NewAssessmentService(runner, log, r.UserCompetency, r.Assessment, r.DevelopmentActivity, notifier),
		Validation: services.NewValidationService(runner, log, r.UserCompetency, r.DevelopmentActivity, notifier),
		Nomination: services.NewNominationService(runner, log, r.UserCompetency, r.ExpertNetwork, r.ExpertNomination, r.ExpertNetworkMember, r.Competency, notifier),
		Review:     services.NewReviewService(log, r.TrainingModule, notifier),
	}
}
