package interview

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	types "github.com/yungbote/interviewsim-backend/internal/domain"
	"github.com/yungbote/interviewsim-backend/internal/platform/apierr"
)

// QuestionWithResponse pairs a question with its single answer record, when
// one exists.
type QuestionWithResponse struct {
	Question *types.Question `json:"question"`
	Response *types.Response `json:"response,omitempty"`
}

type InterviewDetail struct {
	Interview *types.Interview       `json:"interview"`
	Questions []QuestionWithResponse `json:"questions"`
}

func (u Usecases) ListInterviews(ctx context.Context, userID uuid.UUID) ([]*types.Interview, error) {
	if userID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	rows, err := u.deps.Interviews.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "list_interviews_failed", err)
	}
	return rows, nil
}

// GetInterview returns the interview with its ordered questions. Responses are
// omitted; candidates mid-interview should not see scores.
func (u Usecases) GetInterview(ctx context.Context, userID uuid.UUID, interviewID uuid.UUID) (InterviewDetail, error) {
	return u.loadDetail(ctx, userID, interviewID, false)
}

// GetResults returns the fully-materialized aggregate, each question paired
// with its response where one exists.
func (u Usecases) GetResults(ctx context.Context, userID uuid.UUID, interviewID uuid.UUID) (InterviewDetail, error) {
	return u.loadDetail(ctx, userID, interviewID, true)
}

func (u Usecases) loadDetail(ctx context.Context, userID uuid.UUID, interviewID uuid.UUID, withResponses bool) (InterviewDetail, error) {
	if userID == uuid.Nil {
		return InterviewDetail{}, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if interviewID == uuid.Nil {
		return InterviewDetail{}, apierr.New(http.StatusBadRequest, "invalid_interview_id", fmt.Errorf("missing interview_id"))
	}

	iv, err := u.deps.Interviews.GetByID(ctx, nil, interviewID)
	if err != nil {
		return InterviewDetail{}, apierr.New(http.StatusInternalServerError, "load_interview_failed", err)
	}
	if iv == nil || iv.UserID != userID {
		return InterviewDetail{}, apierr.New(http.StatusNotFound, "interview_not_found", nil)
	}

	questions, err := u.deps.Questions.ListByInterviewID(ctx, nil, iv.ID)
	if err != nil {
		return InterviewDetail{}, apierr.New(http.StatusInternalServerError, "load_questions_failed", err)
	}

	detail := InterviewDetail{
		Interview: iv,
		Questions: make([]QuestionWithResponse, 0, len(questions)),
	}

	var byQuestion map[uuid.UUID]*types.Response
	if withResponses && len(questions) > 0 {
		ids := make([]uuid.UUID, 0, len(questions))
		for _, q := range questions {
			ids = append(ids, q.ID)
		}
		responses, err := u.deps.Responses.ListByQuestionIDs(ctx, nil, ids)
		if err != nil {
			return InterviewDetail{}, apierr.New(http.StatusInternalServerError, "load_responses_failed", err)
		}
		byQuestion = make(map[uuid.UUID]*types.Response, len(responses))
		for _, r := range responses {
			byQuestion[r.QuestionID] = r
		}
	}

	for _, q := range questions {
		detail.Questions = append(detail.Questions, QuestionWithResponse{
			Question: q,
			Response: byQuestion[q.ID],
		})
	}
	return detail, nil
}
