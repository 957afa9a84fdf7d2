package interview

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/interviewsim-backend/internal/domain"
	"github.com/yungbote/interviewsim-backend/internal/platform/apierr"
)

type CompleteInterviewInput struct {
	UserID      uuid.UUID
	InterviewID uuid.UUID
}

// CompleteInterview moves an in-progress interview to completed. Completing an
// already-completed interview is a no-op success so callers can retry safely.
// Abandoned interviews stay abandoned.
func (u Usecases) CompleteInterview(ctx context.Context, in CompleteInterviewInput) (*types.Interview, error) {
	if in.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if in.InterviewID == uuid.Nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_interview_id", fmt.Errorf("missing interview_id"))
	}

	var result *types.Interview
	var transitioned bool
	err := u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		iv, err := u.deps.Interviews.GetByIDForUpdate(ctx, tx, in.InterviewID)
		if err != nil {
			return err
		}
		if iv == nil || iv.UserID != in.UserID {
			return apierr.New(http.StatusNotFound, "interview_not_found", nil)
		}

		switch iv.Status {
		case types.InterviewCompleted:
			result = iv
			return nil
		case types.InterviewAbandoned:
			return apierr.New(http.StatusConflict, "interview_not_in_progress", fmt.Errorf("interview status is %q", iv.Status))
		}

		now := time.Now().UTC()
		minutes := int(math.Ceil(now.Sub(iv.StartedAt).Minutes()))
		if minutes < 0 {
			minutes = 0
		}
		iv.Status = types.InterviewCompleted
		iv.CompletedAt = &now
		iv.DurationMinutes = &minutes
		if err := u.deps.Interviews.Update(ctx, tx, iv); err != nil {
			return err
		}
		result = iv
		transitioned = true
		return nil
	})
	if err != nil {
		var ae *apierr.Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, apierr.New(http.StatusInternalServerError, "complete_interview_failed", err)
	}

	// Completion changes the status inside cached score reports.
	if transitioned && u.deps.Cache != nil {
		keys := []string{scoreCacheKey(result.ID, false), scoreCacheKey(result.ID, true)}
		if err := u.deps.Cache.Delete(ctx, keys...); err != nil {
			u.deps.Log.Warn("score cache invalidation failed", "interview_id", result.ID, "error", err)
		}
	}

	return result, nil
}
