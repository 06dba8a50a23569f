package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/services"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type CoachingHandler struct {
	coachingService services.CoachingService
}

func NewCoachingHandler(coachingService services.CoachingService) *CoachingHandler {
	return &CoachingHandler{coachingService: coachingService}
}

func activityID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return uuid.Nil, false
	}
	return id, true
}

func (ch *CoachingHandler) Start(c *gin.Context) {
	id, ok := activityID(c)
	if !ok {
		return
	}
	activity, err := ch.coachingService.StartActivity(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func (ch *CoachingHandler) MarkReady(c *gin.Context) {
	id, ok := activityID(c)
	if !ok {
		return
	}
	var req struct {
		Comment string `json:"comment"`
	}
	_ = c.ShouldBindJSON(&req)
	activity, err := ch.coachingService.MarkReady(c.Request.Context(), id, req.Comment)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func (ch *CoachingHandler) Cancel(c *gin.Context) {
	id, ok := activityID(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	activity, err := ch.coachingService.CancelActivity(c.Request.Context(), id, req.Reason)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func (ch *CoachingHandler) AddFeedback(c *gin.Context) {
	id, ok := activityID(c)
	if !ok {
		return
	}
	var req struct {
		FeedbackType string `json:"feedback_type"`
		Content      string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry, err := ch.coachingService.AddFeedback(c.Request.Context(), id, types.FeedbackType(req.FeedbackType), req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": entry})
}

func (ch *CoachingHandler) ListFeedback(c *gin.Context) {
	id, ok := activityID(c)
	if !ok {
		return
	}
	rows, err := ch.coachingService.ListFeedback(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": rows})
}

func (ch *CoachingHandler) ListForTrainee(c *gin.Context) {
	var traineeID uuid.UUID
	if raw := c.Query("trainee_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trainee id"})
			return
		}
		traineeID = parsed
	}
	rows, err := ch.coachingService.ListForTrainee(c.Request.Context(), traineeID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": rows})
}

func (ch *CoachingHandler) ListForCoach(c *gin.Context) {
	var statuses []types.ActivityStatus
	for _, raw := range c.QueryArray("status") {
		statuses = append(statuses, types.ActivityStatus(raw))
	}
	rows, err := ch.coachingService.ListForCoach(c.Request.Context(), statuses)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": rows})
}
