package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/interviewsim-backend/internal/http/response"
	interviewmod "github.com/yungbote/interviewsim-backend/internal/modules/interview"
	"github.com/yungbote/interviewsim-backend/internal/platform/logger"
)

type SkillGapHandler struct {
	log       *logger.Logger
	interview interviewmod.Usecases
}

func NewSkillGapHandler(log *logger.Logger, interview interviewmod.Usecases) *SkillGapHandler {
	handlerLogger := log.With("handler", "SkillGapHandler")
	return &SkillGapHandler{log: handlerLogger, interview: interview}
}

type analyzeSkillGapsRequest struct {
	ForceReanalyze bool `json:"force_reanalyze"`
}

// POST /api/interviews/:id/skill-gaps/analyze
func (h *SkillGapHandler) AnalyzeSkillGaps(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req analyzeSkillGapsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	gaps, err := h.interview.AnalyzeSkillGaps(c.Request.Context(), interviewmod.AnalyzeSkillGapsInput{
		UserID:         callerID(c),
		InterviewID:    id,
		ForceReanalyze: req.ForceReanalyze,
	})
	if err != nil {
		respondUsecaseError(c, err, "analyze_skill_gaps_failed")
		return
	}
	response.RespondOK(c, gin.H{"skill_gaps": gaps})
}

// GET /api/interviews/:id/skill-gaps
func (h *SkillGapHandler) GetInterviewSkillGaps(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	gaps, err := h.interview.GetInterviewSkillGaps(c.Request.Context(), callerID(c), id)
	if err != nil {
		respondUsecaseError(c, err, "get_skill_gaps_failed")
		return
	}
	response.RespondOK(c, gin.H{"skill_gaps": gaps})
}

// GET /api/skill-gaps
func (h *SkillGapHandler) ListUserSkillGaps(c *gin.Context) {
	gaps, err := h.interview.ListUserSkillGaps(c.Request.Context(), callerID(c))
	if err != nil {
		respondUsecaseError(c, err, "list_skill_gaps_failed")
		return
	}
	response.RespondOK(c, gin.H{"skill_gaps": gaps})
}
