package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/interviewsim-backend/internal/http/response"
	interviewmod "github.com/yungbote/interviewsim-backend/internal/modules/interview"
	"github.com/yungbote/interviewsim-backend/internal/platform/apierr"
	"github.com/yungbote/interviewsim-backend/internal/platform/logger"
	"github.com/yungbote/interviewsim-backend/internal/requestdata"
)

type InterviewHandler struct {
	log       *logger.Logger
	interview interviewmod.Usecases
}

func NewInterviewHandler(log *logger.Logger, interview interviewmod.Usecases) *InterviewHandler {
	handlerLogger := log.With("handler", "InterviewHandler")
	return &InterviewHandler{log: handlerLogger, interview: interview}
}

func respondUsecaseError(c *gin.Context, err error, fallbackCode string) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondError(c, http.StatusInternalServerError, fallbackCode, err)
}

func callerID(c *gin.Context) uuid.UUID {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		return uuid.Nil
	}
	return rd.UserID
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, err)
		return uuid.Nil, false
	}
	return id, true
}

type createInterviewRequest struct {
	JobRole       string `json:"job_role"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	QuestionType  string `json:"question_type"` // technical|behavioral|mixed
}

// POST /api/interviews
func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	var req createInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	out, err := h.interview.CreateInterview(c.Request.Context(), interviewmod.CreateInterviewInput{
		UserID:     callerID(c),
		JobRole:    req.JobRole,
		Difficulty: req.Difficulty,
		Count:      req.QuestionCount,
		TypeFilter: req.QuestionType,
	})
	if err != nil {
		respondUsecaseError(c, err, "create_interview_failed")
		return
	}
	response.RespondCreated(c, out)
}

// GET /api/interviews
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	rows, err := h.interview.ListInterviews(c.Request.Context(), callerID(c))
	if err != nil {
		respondUsecaseError(c, err, "list_interviews_failed")
		return
	}
	response.RespondOK(c, gin.H{"interviews": rows})
}

// GET /api/me/stats
func (h *InterviewHandler) GetUserStats(c *gin.Context) {
	stats, err := h.interview.GetUserStats(c.Request.Context(), callerID(c))
	if err != nil {
		respondUsecaseError(c, err, "load_stats_failed")
		return
	}
	response.RespondOK(c, stats)
}

// GET /api/interviews/:id
func (h *InterviewHandler) GetInterview(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	detail, err := h.interview.GetInterview(c.Request.Context(), callerID(c), id)
	if err != nil {
		respondUsecaseError(c, err, "get_interview_failed")
		return
	}
	response.RespondOK(c, detail)
}

// GET /api/interviews/:id/results
func (h *InterviewHandler) GetResults(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	detail, err := h.interview.GetResults(c.Request.Context(), callerID(c), id)
	if err != nil {
		respondUsecaseError(c, err, "get_results_failed")
		return
	}
	response.RespondOK(c, detail)
}

// POST /api/interviews/:id/complete
func (h *InterviewHandler) CompleteInterview(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	iv, err := h.interview.CompleteInterview(c.Request.Context(), interviewmod.CompleteInterviewInput{
		UserID:      callerID(c),
		InterviewID: id,
	})
	if err != nil {
		respondUsecaseError(c, err, "complete_interview_failed")
		return
	}
	response.RespondOK(c, gin.H{"interview": iv})
}

type submitAnswerRequest struct {
	AnswerText string `json:"answer_text"`
	TimeTaken  *int   `json:"time_taken,omitempty"`
}

// POST /api/interviews/:id/questions/:question_id/answer
func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	interviewID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	questionID, ok := pathUUID(c, "question_id")
	if !ok {
		return
	}

	// Answers are bounded at 5000 characters; cap the body well above that.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 1<<16)

	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	resp, err := h.interview.SubmitAnswer(c.Request.Context(), interviewmod.SubmitAnswerInput{
		UserID:      callerID(c),
		InterviewID: interviewID,
		QuestionID:  questionID,
		AnswerText:  req.AnswerText,
		TimeTaken:   req.TimeTaken,
	})
	if err != nil {
		respondUsecaseError(c, err, "submit_answer_failed")
		return
	}
	response.RespondCreated(c, gin.H{"response": resp})
}

// GET /api/interviews/:id/score?summary=true
func (h *InterviewHandler) GetScore(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	generateSummary, _ := strconv.ParseBool(c.DefaultQuery("summary", "false"))

	breakdown, err := h.interview.GetScore(c.Request.Context(), interviewmod.GetScoreInput{
		UserID:          callerID(c),
		InterviewID:     id,
		GenerateSummary: generateSummary,
	})
	if err != nil {
		respondUsecaseError(c, err, "get_score_failed")
		return
	}
	response.RespondOK(c, breakdown)
}
