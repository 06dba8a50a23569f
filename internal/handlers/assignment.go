package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/services"
)

type AssignmentHandler struct {
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(assignmentService services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

func (ah *AssignmentHandler) Assign(c *gin.Context) {
	var req struct {
		CompetencyID uuid.UUID   `json:"competency_id"`
		TargetLevel  int         `json:"target_level"`
		CurrentLevel int         `json:"current_level"`
		UserIDs      []uuid.UUID `json:"user_ids"`
		CoachID      *uuid.UUID  `json:"coach_id"`
		TargetDate   *time.Time  `json:"target_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := ah.assignmentService.AssignCompetency(c.Request.Context(), services.AssignCompetencyInput{
		CompetencyID: req.CompetencyID,
		TargetLevel:  req.TargetLevel,
		Mode:         services.AssignmentModeForLevel(req.CurrentLevel),
		UserIDs:      req.UserIDs,
		CoachID:      req.CoachID,
		TargetDate:   req.TargetDate,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (ah *AssignmentHandler) ListForUser(c *gin.Context) {
	var userID uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		userID = parsed
	}
	rows, err := ah.assignmentService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": rows})
}

func (ah *AssignmentHandler) ListForCompetency(c *gin.Context) {
	competencyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid competency id"})
		return
	}
	rows, err := ah.assignmentService.ListForCompetency(c.Request.Context(), competencyID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": rows})
}

func (ah *AssignmentHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}
	if err := ah.assignmentService.RemoveAssignment(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}
