package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/services"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type CompetencyHandler struct {
	competencyService services.CompetencyService
}

func NewCompetencyHandler(competencyService services.CompetencyService) *CompetencyHandler {
	return &CompetencyHandler{competencyService: competencyService}
}

func (ch *CompetencyHandler) Create(c *gin.Context) {
	var req struct {
		Name         string     `json:"name"`
		CategoryID   *uuid.UUID `json:"category_id"`
		OwnerID      *uuid.UUID `json:"owner_id"`
		Description  string     `json:"description"`
		Level1Rubric string     `json:"level1_rubric"`
		Level2Rubric string     `json:"level2_rubric"`
		Level3Rubric string     `json:"level3_rubric"`
		Level4Rubric string     `json:"level4_rubric"`
		Level5Rubric string     `json:"level5_rubric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	competency := types.Competency{
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		Description:  req.Description,
		Level1Rubric: req.Level1Rubric,
		Level2Rubric: req.Level2Rubric,
		Level3Rubric: req.Level3Rubric,
		Level4Rubric: req.Level4Rubric,
		Level5Rubric: req.Level5Rubric,
	}
	if req.OwnerID != nil {
		competency.OwnerID = *req.OwnerID
	}
	created, err := ch.competencyService.CreateCompetency(c.Request.Context(), &competency)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"competency": created})
}

func (ch *CompetencyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid competency id"})
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := ch.competencyService.UpdateCompetency(c.Request.Context(), id, updates); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}

func (ch *CompetencyHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid competency id"})
		return
	}
	if err := ch.competencyService.DeactivateCompetency(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}

func (ch *CompetencyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid competency id"})
		return
	}
	competency, err := ch.competencyService.GetCompetency(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"competency": competency})
}

func (ch *CompetencyHandler) List(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	competencies, err := ch.competencyService.ListCompetencies(c.Request.Context(), activeOnly)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"competencies": competencies})
}

func (ch *CompetencyHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	category, err := ch.competencyService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (ch *CompetencyHandler) ListCategories(c *gin.Context) {
	categories, err := ch.competencyService.ListCategories(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
