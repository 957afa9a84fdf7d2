package interview

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	types "github.com/yungbote/interviewsim-backend/internal/domain"
	"github.com/yungbote/interviewsim-backend/internal/platform/apierr"
)

type UserStats struct {
	TotalInterviews      int      `json:"total_interviews"`
	CompletedInterviews  int      `json:"completed_interviews"`
	InProgressInterviews int      `json:"in_progress_interviews"`
	AverageScore         *float64 `json:"average_score"`
	BestScore            *float64 `json:"best_score"`
}

// GetUserStats aggregates the caller's interview history for the dashboard.
// Average and best only count completed interviews that carry a score.
func (u Usecases) GetUserStats(ctx context.Context, userID uuid.UUID) (UserStats, error) {
	if userID == uuid.Nil {
		return UserStats{}, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}

	rows, err := u.deps.Interviews.ListByUserID(ctx, nil, userID)
	if err != nil {
		return UserStats{}, apierr.New(http.StatusInternalServerError, "load_interviews_failed", err)
	}

	var stats UserStats
	var sum float64
	var scored int
	for _, iv := range rows {
		stats.TotalInterviews++
		switch iv.Status {
		case types.InterviewCompleted:
			stats.CompletedInterviews++
		case types.InterviewInProgress:
			stats.InProgressInterviews++
		}
		if iv.Status != types.InterviewCompleted || iv.OverallScore == nil {
			continue
		}
		score := *iv.OverallScore
		sum += score
		scored++
		if stats.BestScore == nil || score > *stats.BestScore {
			best := score
			stats.BestScore = &best
		}
	}
	if scored > 0 {
		avg := round1(sum / float64(scored))
		stats.AverageScore = &avg
	}
	return stats, nil
}
