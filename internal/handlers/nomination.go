package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/services"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type NominationHandler struct {
	nominationService services.NominationService
}

func NewNominationHandler(nominationService services.NominationService) *NominationHandler {
	return &NominationHandler{nominationService: nominationService}
}

func (nh *NominationHandler) Submit(c *gin.Context) {
	var req struct {
		UserID       uuid.UUID `json:"user_id"`
		CompetencyID uuid.UUID `json:"competency_id"`
		ProposedRole string    `json:"proposed_role"`
		SiteName     string    `json:"site_name"`
		Notes        string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	nomination, err := nh.nominationService.SubmitNomination(c.Request.Context(), services.SubmitNominationInput{
		UserID:       req.UserID,
		CompetencyID: req.CompetencyID,
		ProposedRole: types.ExpertRole(req.ProposedRole),
		SiteName:     req.SiteName,
		Notes:        req.Notes,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nomination": nomination})
}

func (nh *NominationHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nomination id"})
		return
	}
	nomination, err := nh.nominationService.ApproveNomination(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nomination": nomination})
}

func (nh *NominationHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nomination id"})
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&req)
	nomination, err := nh.nominationService.RejectNomination(c.Request.Context(), id, req.Notes)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nomination": nomination})
}

func (nh *NominationHandler) ListPending(c *gin.Context) {
	rows, err := nh.nominationService.ListPending(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nominations": rows})
}

func (nh *NominationHandler) ListForUser(c *gin.Context) {
	var userID uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		userID = parsed
	}
	rows, err := nh.nominationService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nominations": rows})
}

func (nh *NominationHandler) CreateNetwork(c *gin.Context) {
	var req struct {
		CompetencyID uuid.UUID `json:"competency_id"`
		Name         string    `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	network, err := nh.nominationService.CreateNetwork(c.Request.Context(), req.CompetencyID, req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"network": network})
}

func (nh *NominationHandler) ListNetworkMembers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid network id"})
		return
	}
	rows, err := nh.nominationService.ListNetworkMembers(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": rows})
}
