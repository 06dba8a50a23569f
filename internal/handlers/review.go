package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/services"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func moduleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module id"})
		return uuid.Nil, false
	}
	return id, true
}

func (rh *ReviewHandler) Create(c *gin.Context) {
	var req struct {
		Title        string     `json:"title"`
		Content      string     `json:"content"`
		CompetencyID *uuid.UUID `json:"competency_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	module, err := rh.reviewService.CreateModule(c.Request.Context(), req.Title, req.Content, req.CompetencyID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"module": module})
}

func (rh *ReviewHandler) Submit(c *gin.Context) {
	id, ok := moduleID(c)
	if !ok {
		return
	}
	module, err := rh.reviewService.SubmitModule(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"module": module})
}

func (rh *ReviewHandler) Approve(c *gin.Context) {
	id, ok := moduleID(c)
	if !ok {
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&req)
	module, err := rh.reviewService.ApproveModule(c.Request.Context(), id, req.Notes)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"module": module})
}

func (rh *ReviewHandler) Reject(c *gin.Context) {
	id, ok := moduleID(c)
	if !ok {
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&req)
	module, err := rh.reviewService.RejectModule(c.Request.Context(), id, req.Notes)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"module": module})
}

func (rh *ReviewHandler) ListByStatus(c *gin.Context) {
	var statuses []types.ModuleStatus
	for _, raw := range c.QueryArray("status") {
		statuses = append(statuses, types.ModuleStatus(raw))
	}
	rows, err := rh.reviewService.ListByStatus(c.Request.Context(), statuses)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": rows})
}

func (rh *ReviewHandler) ListMine(c *gin.Context) {
	rows, err := rh.reviewService.ListMine(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": rows})
}
