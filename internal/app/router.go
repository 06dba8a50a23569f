package app

import (
	"github.com/gin-gonic/gin"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/server"
)

func wireRouter(handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:       handlers.Auth,
		AuthMiddleware:    middleware.Auth,
		UserHandler:       handlers.User,
		SSEHandler:        handlers.SSE,
		CompetencyHandler: handlers.Competency,
		AssignmentHandler: handlers.Assignment,
		CoachingHandler:   handlers.Coaching,
		AssessmentHandler: handlers.Assessment,
		NominationHandler: handlers.Nomination,
		ReviewHandler:     handlers.Review,
	})
}
