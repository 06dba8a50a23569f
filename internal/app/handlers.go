package app

import (
	"github.com/eddydauphin/etmanager-portal-sub001/internal/handlers"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/sse"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	SSE        *handlers.SSEHandler
	Competency *handlers.CompetencyHandler
	Assignment *handlers.AssignmentHandler
	Coaching   *handlers.CoachingHandler
	Assessment *handlers.AssessmentHandler
	Nomination *handlers.NominationHandler
	Review     *handlers.ReviewHandler
}

func wireHandlers(log *logger.Logger, s Services, hub *sse.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(s.Auth),
		User:       handlers.NewUserHandler(s.User),
		SSE:        handlers.NewSSEHandler(log, hub),
		Competency: handlers.NewCompetencyHandler(s.Competency),
		Assignment: handlers.NewAssignmentHandler(s.Assignment),
		Coaching:   handlers.NewCoachingHandler(s.Coaching),
		Assessment: handlers.NewAssessmentHandler(s.Assessment, s.Validation),
		Nomination: handlers.NewNominationHandler(s.Nomination),
		Review:     handlers.NewReviewHandler(s.Review),
	}
}
