package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/services"
)

type AssessmentHandler struct {
	assessmentService services.AssessmentService
	validationService services.ValidationService
}

func NewAssessmentHandler(assessmentService services.AssessmentService, validationService services.ValidationService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
		validationService: validationService,
	}
}

func (ah *AssessmentHandler) Assess(c *gin.Context) {
	var req services.AssessItem
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	assessment, err := ah.assessmentService.Assess(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
}

func (ah *AssessmentHandler) AssessBatch(c *gin.Context) {
	var req struct {
		Items []services.AssessItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := ah.assessmentService.AssessBatch(c.Request.Context(), req.Items)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (ah *AssessmentHandler) ListForUser(c *gin.Context) {
	var userID uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		userID = parsed
	}
	rows, err := ah.assessmentService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": rows})
}

func (ah *AssessmentHandler) Validate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}
	var req struct {
		AchievedLevel int    `json:"achieved_level"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	uc, err := ah.validationService.Validate(c.Request.Context(), id, req.AchievedLevel, req.Notes)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": uc})
}

func (ah *AssessmentHandler) ValidateActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}
	var req struct {
		AchievedLevel int    `json:"achieved_level"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	activity, err := ah.validationService.ValidateActivity(c.Request.Context(), id, req.AchievedLevel, req.Notes)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}
