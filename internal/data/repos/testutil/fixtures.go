package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/interviewsim-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FullName:  "Test Candidate",
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedInterview(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.Interview {
	tb.Helper()
	iv := &types.Interview{
		ID:         uuid.New(),
		UserID:     userID,
		JobRole:    "Backend Developer",
		Difficulty: types.DifficultyIntermediate,
		Status:     types.InterviewInProgress,
		StartedAt:  time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(iv).Error; err != nil {
		tb.Fatalf("seed interview: %v", err)
	}
	return iv
}

func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, interviewID uuid.UUID, order int, skill string) *types.Question {
	tb.Helper()
	q := &types.Question{
		ID:             uuid.New(),
		InterviewID:    interviewID,
		QuestionText:   "Explain how an index speeds up lookups.",
		QuestionType:   types.QuestionTechnical,
		Difficulty:     types.DifficultyIntermediate,
		SkillCategory:  skill,
		ExpectedPoints: types.StringList([]string{"b-tree", "selectivity", "cost"}),
		OrderNumber:    order,
		CreatedAt:      time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}

func SeedResponse(tb testing.TB, ctx context.Context, tx *gorm.DB, questionID uuid.UUID, score float64) *types.Response {
	tb.Helper()
	resp := &types.Response{
		ID:           uuid.New(),
		QuestionID:   questionID,
		AnswerText:   "An index narrows the rows the engine must read.",
		Score:        score,
		Feedback:     "Reasonable coverage.",
		Strengths:    types.StringList([]string{"clear"}),
		Improvements: types.StringList([]string{"mention cost"}),
		Keywords:     types.StringList([]string{"index"}),
		AnsweredAt:   time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(resp).Error; err != nil {
		tb.Fatalf("seed response: %v", err)
	}
	return resp
}
