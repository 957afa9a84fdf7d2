package interview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/interviewsim-backend/internal/domain"
	"github.com/yungbote/interviewsim-backend/internal/platform/apierr"
)

const (
	minAnswerLen = 1
	maxAnswerLen = 5000
)

type SubmitAnswerInput struct {
	UserID      uuid.UUID
	InterviewID uuid.UUID
	QuestionID  uuid.UUID
	AnswerText  string
	TimeTaken   *int
}

// SubmitAnswer grades one answer and persists it. The model call happens
// before the transaction; the transaction inserts the response and recomputes
// the interview's overall score under a row lock so concurrent submissions for
// different questions never produce a lost update.
func (u Usecases) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*types.Response, error) {
	if in.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if in.InterviewID == uuid.Nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_interview_id", fmt.Errorf("missing interview_id"))
	}
	if in.QuestionID == uuid.Nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_question_id", fmt.Errorf("missing question_id"))
	}

	iv, err := u.deps.Interviews.GetByID(ctx, nil, in.InterviewID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "load_interview_failed", err)
	}
	if iv == nil || iv.UserID != in.UserID {
		return nil, apierr.New(http.StatusNotFound, "interview_not_found", nil)
	}
	if iv.Status != types.InterviewInProgress {
		return nil, apierr.New(http.StatusConflict, "interview_not_in_progress", fmt.Errorf("interview status is %q", iv.Status))
	}

	question, err := u.deps.Questions.GetByID(ctx, nil, in.QuestionID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "load_question_failed", err)
	}
	if question == nil || question.InterviewID != iv.ID {
		return nil, apierr.New(http.StatusNotFound, "question_not_found", nil)
	}

	existing, err := u.deps.Responses.GetByQuestionID(ctx, nil, question.ID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "load_response_failed", err)
	}
	if existing != nil {
		return nil, apierr.New(http.StatusConflict, "already_answered", nil)
	}

	answer := strings.TrimSpace(in.AnswerText)
	if n := utf8.RuneCountInString(answer); n < minAnswerLen || n > maxAnswerLen {
		return nil, apierr.New(http.StatusBadRequest, "invalid_answer_text", fmt.Errorf("answer_text must be %d-%d characters", minAnswerLen, maxAnswerLen))
	}
	if in.TimeTaken != nil && *in.TimeTaken < 0 {
		return nil, apierr.New(http.StatusBadRequest, "invalid_time_taken", fmt.Errorf("time_taken must be non-negative"))
	}

	if u.deps.AI == nil {
		return nil, apierr.New(http.StatusInternalServerError, "ai_not_configured", fmt.Errorf("missing deps"))
	}

	eval, err := runAnswerEvaluator(ctx, u.deps.AI, answerEvaluationInput{
		Question:   question,
		AnswerText: answer,
		Weights:    u.deps.Rubric.Weights,
	})
	if err != nil {
		// Nothing was persisted; the caller may retry the submission.
		return nil, apierr.New(http.StatusBadGateway, "evaluation_failed", err)
	}

	resp := &types.Response{
		ID:           uuid.New(),
		QuestionID:   question.ID,
		AnswerText:   answer,
		Score:        eval.Score,
		Feedback:     eval.Feedback,
		Strengths:    types.StringList(eval.Strengths),
		Improvements: types.StringList(eval.Improvements),
		Keywords:     types.StringList(eval.Keywords),
		TimeTaken:    in.TimeTaken,
		AnsweredAt:   time.Now().UTC(),
	}

	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-read under lock: the interview may have been completed, or a
		// racing submission may have answered this question, while the model
		// call was in flight.
		locked, err := u.deps.Interviews.GetByIDForUpdate(ctx, tx, iv.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return apierr.New(http.StatusNotFound, "interview_not_found", nil)
		}
		if locked.Status != types.InterviewInProgress {
			return apierr.New(http.StatusConflict, "interview_not_in_progress", fmt.Errorf("interview status is %q", locked.Status))
		}

		if err := u.deps.Responses.Create(ctx, tx, resp); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierr.New(http.StatusConflict, "already_answered", nil)
			}
			return err
		}

		scores, err := u.deps.Responses.ListScoresByInterviewID(ctx, tx, iv.ID)
		if err != nil {
			return err
		}
		avg := mean(scores)
		return u.deps.Interviews.SetOverallScore(ctx, tx, iv.ID, &avg)
	})
	if err != nil {
		var ae *apierr.Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, apierr.New(http.StatusInternalServerError, "submit_answer_failed", err)
	}

	u.deps.Log.Info("answer submitted",
		"interview_id", iv.ID,
		"question_id", question.ID,
		"score", resp.Score)
	return resp, nil
}
