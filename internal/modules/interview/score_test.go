package interview

import (
	"context"
	"fmt"
	"testing"

	"github.com/yungbote/interviewsim-backend/internal/data/repos/testutil"
	types "github.com/yungbote/interviewsim-backend/internal/domain"
)

func TestGetScore_SummaryFlag(t *testing.T) {
	ai := newFakeAI(t)
	u, db := newTestUsecases(t, ai)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "score-summary@example.com")
	iv := testutil.SeedInterview(t, ctx, db, owner.ID)
	q1 := testutil.SeedQuestion(t, ctx, db, iv.ID, 1, "SQL")
	testutil.SeedQuestion(t, ctx, db, iv.ID, 2, "Go")
	testutil.SeedResponse(t, ctx, db, q1.ID, 90)

	ai.push("score_summary_v1", map[string]any{
		"narrative":        "Strong fundamentals overall.",
		"top_strengths":    []any{"clarity"},
		"top_improvements": []any{"depth"},
	}, nil)
	out, err := u.GetScore(ctx, GetScoreInput{UserID: owner.ID, InterviewID: iv.ID, GenerateSummary: true})
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if out.Summary != "Strong fundamentals overall." || len(out.TopStrengths) != 1 {
		t.Fatalf("summary not populated: %+v", out)
	}
	if out.CompletionRate != 50.0 {
		t.Fatalf("completion_rate %v", out.CompletionRate)
	}
}

func TestGetScore_SummaryFailureLeavesRestIntact(t *testing.T) {
	ai := newFakeAI(t)
	u, db := newTestUsecases(t, ai)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "score-summary-fail@example.com")
	iv := testutil.SeedInterview(t, ctx, db, owner.ID)
	q1 := testutil.SeedQuestion(t, ctx, db, iv.ID, 1, "SQL")
	testutil.SeedResponse(t, ctx, db, q1.ID, 88)
	score := 88.0
	if err := u.deps.Interviews.SetOverallScore(ctx, nil, iv.ID, &score); err != nil {
		t.Fatalf("set overall: %v", err)
	}

	ai.push("score_summary_v1", nil, fmt.Errorf("model unavailable"))
	out, err := u.GetScore(ctx, GetScoreInput{UserID: owner.ID, InterviewID: iv.ID, GenerateSummary: true})
	if err != nil {
		t.Fatalf("summary failure must not fail the breakdown: %v", err)
	}
	if out.Summary != "" || len(out.TopStrengths) != 0 {
		t.Fatalf("summary fields must be empty on failure: %+v", out)
	}
	if out.OverallScore == nil || *out.OverallScore != 88 || out.PerformanceTier != "excellent" {
		t.Fatalf("breakdown fields degraded: %+v", out)
	}
	if out.CompletionRate != 100.0 {
		t.Fatalf("completion_rate %v", out.CompletionRate)
	}
}

func TestGetScore_CachedReportFollowsStatusChange(t *testing.T) {
	ai := newFakeAI(t)
	cache := newFakeCache()
	u, db := newTestUsecasesWithCache(t, ai, cache)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "score-cache@example.com")
	iv := testutil.SeedInterview(t, ctx, db, owner.ID)
	q1 := testutil.SeedQuestion(t, ctx, db, iv.ID, 1, "SQL")
	testutil.SeedResponse(t, ctx, db, q1.ID, 80)

	first, err := u.GetScore(ctx, GetScoreInput{UserID: owner.ID, InterviewID: iv.ID})
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if first.Status != types.InterviewInProgress {
		t.Fatalf("status %q", first.Status)
	}
	if cache.sets != 1 {
		t.Fatalf("breakdown should be cached, sets=%d", cache.sets)
	}

	// Unchanged state serves the cached entry.
	if _, err := u.GetScore(ctx, GetScoreInput{UserID: owner.ID, InterviewID: iv.ID}); err != nil {
		t.Fatalf("GetScore cached: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("second identical read must hit the cache, sets=%d", cache.sets)
	}

	if _, err := u.CompleteInterview(ctx, CompleteInterviewInput{UserID: owner.ID, InterviewID: iv.ID}); err != nil {
		t.Fatalf("CompleteInterview: %v", err)
	}
	if cache.deletes == 0 {
		t.Fatalf("completion must invalidate cached score reports")
	}

	second, err := u.GetScore(ctx, GetScoreInput{UserID: owner.ID, InterviewID: iv.ID})
	if err != nil {
		t.Fatalf("GetScore after completion: %v", err)
	}
	if second.Status != types.InterviewCompleted {
		t.Fatalf("stale breakdown after completion: status %q", second.Status)
	}
}

func TestGetScore_FailedSummaryNotCached(t *testing.T) {
	ai := newFakeAI(t)
	cache := newFakeCache()
	u, db := newTestUsecasesWithCache(t, ai, cache)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "score-cache-summary@example.com")
	iv := testutil.SeedInterview(t, ctx, db, owner.ID)
	q1 := testutil.SeedQuestion(t, ctx, db, iv.ID, 1, "SQL")
	testutil.SeedResponse(t, ctx, db, q1.ID, 75)

	ai.push("score_summary_v1", nil, fmt.Errorf("model unavailable"))
	out, err := u.GetScore(ctx, GetScoreInput{UserID: owner.ID, InterviewID: iv.ID, GenerateSummary: true})
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if out.Summary != "" {
		t.Fatalf("summary should be empty on failure: %+v", out)
	}
	if cache.sets != 0 {
		t.Fatalf("failed summary must not be cached, sets=%d", cache.sets)
	}

	// The next summary request retries instead of serving the empty fields.
	ai.push("score_summary_v1", map[string]any{
		"narrative":        "Back on track.",
		"top_strengths":    []any{"clarity"},
		"top_improvements": []any{"depth"},
	}, nil)
	out, err = u.GetScore(ctx, GetScoreInput{UserID: owner.ID, InterviewID: iv.ID, GenerateSummary: true})
	if err != nil {
		t.Fatalf("GetScore retry: %v", err)
	}
	if out.Summary != "Back on track." {
		t.Fatalf("summary retry suppressed: %+v", out)
	}
	if ai.calls != 2 {
		t.Fatalf("expected a second summary call, calls=%d", ai.calls)
	}
	if cache.sets != 1 {
		t.Fatalf("successful summary should be cached, sets=%d", cache.sets)
	}
}

func TestGetScore_NoAnswers(t *testing.T) {
	ai := newFakeAI(t)
	u, db := newTestUsecases(t, ai)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "score-empty@example.com")
	iv := testutil.SeedInterview(t, ctx, db, owner.ID)
	testutil.SeedQuestion(t, ctx, db, iv.ID, 1, "SQL")

	out, err := u.GetScore(ctx, GetScoreInput{UserID: owner.ID, InterviewID: iv.ID, GenerateSummary: true})
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if out.OverallScore != nil || out.PerformanceTier != "" || out.CompletionRate != 0 {
		t.Fatalf("empty interview breakdown: %+v", out)
	}
	if ai.calls != 0 {
		t.Fatalf("no summary call without answers, calls=%d", ai.calls)
	}
}
