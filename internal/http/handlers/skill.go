package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/jobtrack-backend/internal/http/response"
	"github.com/yungbote/jobtrack-backend/internal/services"
)

type SkillHandler struct {
	skillService services.SkillService
}

func NewSkillHandler(skillService services.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

// GET /api/skills
func (h *SkillHandler) List(c *gin.Context) {
	skills, err := h.skillService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, skills)
}

// POST /api/skills
func (h *SkillHandler) Upsert(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Level string `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	skills, err := h.skillService.Upsert(c.Request.Context(), req.Name, req.Level)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, skills)
}

// DELETE /api/skills/:name
func (h *SkillHandler) Delete(c *gin.Context) {
	skills, err := h.skillService.Delete(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, skills)
}

// GET /api/skills/gap-analysis
func (h *SkillHandler) GapAnalysis(c *gin.Context) {
	gaps, err := h.skillService.GapAnalysis(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gaps)
}
