package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/handlers"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	SSEHandler        *handlers.SSEHandler
	CompetencyHandler *handlers.CompetencyHandler
	AssignmentHandler *handlers.AssignmentHandler
	CoachingHandler   *handlers.CoachingHandler
	AssessmentHandler *handlers.AssessmentHandler
	NominationHandler *handlers.NominationHandler
	ReviewHandler     *handlers.ReviewHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// SSE
	protected.GET("/sse/stream", cfg.SSEHandler.Stream)
	protected.POST("/sse/subscribe", cfg.SSEHandler.Subscribe)
	protected.POST("/sse/unsubscribe", cfg.SSEHandler.Unsubscribe)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.GET("/users", cfg.UserHandler.ListUsers)
	protected.GET("/notifications", cfg.UserHandler.ListNotifications)
	protected.POST("/notifications/read", cfg.UserHandler.MarkNotificationsRead)
	// Competency catalog
	protected.GET("/competencies", cfg.CompetencyHandler.List)
	protected.POST("/competencies", cfg.CompetencyHandler.Create)
	protected.GET("/competencies/:id", cfg.CompetencyHandler.Get)
	protected.PATCH("/competencies/:id", cfg.CompetencyHandler.Update)
	protected.DELETE("/competencies/:id", cfg.CompetencyHandler.Deactivate)
	protected.GET("/competencies/:id/assignments", cfg.AssignmentHandler.ListForCompetency)
	protected.GET("/categories", cfg.CompetencyHandler.ListCategories)
	protected.POST("/categories", cfg.CompetencyHandler.CreateCategory)
	// Assignments
	protected.POST("/assignments", cfg.AssignmentHandler.Assign)
	protected.GET("/assignments", cfg.AssignmentHandler.ListForUser)
	protected.DELETE("/assignments/:id", cfg.AssignmentHandler.Remove)
	protected.POST("/assignments/:id/validate", cfg.AssessmentHandler.Validate)
	// Coaching activities
	protected.GET("/activities", cfg.CoachingHandler.ListForTrainee)
	protected.GET("/activities/coaching", cfg.CoachingHandler.ListForCoach)
	protected.POST("/activities/:id/start", cfg.CoachingHandler.Start)
	protected.POST("/activities/:id/ready", cfg.CoachingHandler.MarkReady)
	protected.POST("/activities/:id/cancel", cfg.CoachingHandler.Cancel)
	protected.POST("/activities/:id/validate", cfg.AssessmentHandler.ValidateActivity)
	protected.GET("/activities/:id/feedback", cfg.CoachingHandler.ListFeedback)
	protected.POST("/activities/:id/feedback", cfg.CoachingHandler.AddFeedback)
	// Assessments
	protected.POST("/assessments", cfg.AssessmentHandler.Assess)
	protected.POST("/assessments/batch", cfg.AssessmentHandler.AssessBatch)
	protected.GET("/assessments", cfg.AssessmentHandler.ListForUser)
	// Expert nominations
	protected.POST("/nominations", cfg.NominationHandler.Submit)
	protected.GET("/nominations", cfg.NominationHandler.ListForUser)
	protected.GET("/nominations/pending", cfg.NominationHandler.ListPending)
	protected.POST("/nominations/:id/approve", cfg.NominationHandler.Approve)
	protected.POST("/nominations/:id/reject", cfg.NominationHandler.Reject)
	protected.POST("/networks", cfg.NominationHandler.CreateNetwork)
	protected.GET("/networks/:id/members", cfg.NominationHandler.ListNetworkMembers)
	// Training modules
	protected.POST("/modules", cfg.ReviewHandler.Create)
	protected.GET("/modules", cfg.ReviewHandler.ListByStatus)
	protected.GET("/modules/mine", cfg.ReviewHandler.ListMine)
	protected.POST("/modules/:id/submit", cfg.ReviewHandler.Submit)
	protected.POST("/modules/:id/approve", cfg.ReviewHandler.Approve)
	protected.POST("/modules/:id/reject", cfg.ReviewHandler.Reject)

	return router
}
