package interview

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/yungbote/interviewsim-backend/internal/data/repos/testutil"
	types "github.com/yungbote/interviewsim-backend/internal/domain"
	"github.com/yungbote/interviewsim-backend/internal/platform/apierr"
)

func TestAnalyzeSkillGaps_ComputesTiersAndGapScores(t *testing.T) {
	ai := newFakeAI(t)
	u, db := newTestUsecases(t, ai)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "gaps-compute@example.com")
	iv := testutil.SeedInterview(t, ctx, db, owner.ID)
	q1 := testutil.SeedQuestion(t, ctx, db, iv.ID, 1, "SQL")
	q2 := testutil.SeedQuestion(t, ctx, db, iv.ID, 2, "SQL")
	q3 := testutil.SeedQuestion(t, ctx, db, iv.ID, 3, "Concurrency")
	testutil.SeedResponse(t, ctx, db, q1.ID, 90)
	testutil.SeedResponse(t, ctx, db, q2.ID, 84)
	testutil.SeedResponse(t, ctx, db, q3.ID, 40)

	ai.push("skill_recommendations_v1", map[string]any{
		"recommendations": map[string]any{
			"Concurrency": "Work through race-condition exercises with a detector enabled.",
		},
	}, nil)
	gaps, err := u.AnalyzeSkillGaps(ctx, AnalyzeSkillGapsInput{UserID: owner.ID, InterviewID: iv.ID})
	if err != nil {
		t.Fatalf("AnalyzeSkillGaps: %v", err)
	}
	if len(gaps) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(gaps))
	}

	// Widest gap first.
	if gaps[0].SkillName != "Concurrency" || gaps[0].ProficiencyLevel != types.ProficiencyWeak || gaps[0].GapScore != 60 {
		t.Fatalf("concurrency gap %+v", gaps[0])
	}
	if gaps[0].Recommendation != "Work through race-condition exercises with a detector enabled." {
		t.Fatalf("model recommendation not used: %q", gaps[0].Recommendation)
	}
	// SQL avg 87 is strong; strong skills keep a stock recommendation.
	if gaps[1].SkillName != "SQL" || gaps[1].ProficiencyLevel != types.ProficiencyStrong || gaps[1].GapScore != 13 {
		t.Fatalf("sql gap %+v", gaps[1])
	}
	if gaps[1].Recommendation == "" {
		t.Fatalf("strong skill still gets a recommendation")
	}
}

func TestAnalyzeSkillGaps_IdempotentWithoutForce(t *testing.T) {
	ai := newFakeAI(t)
	u, db := newTestUsecases(t, ai)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "gaps-idem@example.com")
	iv := testutil.SeedInterview(t, ctx, db, owner.ID)
	q1 := testutil.SeedQuestion(t, ctx, db, iv.ID, 1, "SQL")
	testutil.SeedResponse(t, ctx, db, q1.ID, 60)

	ai.push("skill_recommendations_v1", map[string]any{"recommendations": map[string]any{}}, nil)
	first, err := u.AnalyzeSkillGaps(ctx, AnalyzeSkillGapsInput{UserID: owner.ID, InterviewID: iv.ID})
	if err != nil {
		t.Fatalf("first analysis: %v", err)
	}

	// No model call, same stored rows.
	second, err := u.AnalyzeSkillGaps(ctx, AnalyzeSkillGapsInput{UserID: owner.ID, InterviewID: iv.ID})
	if err != nil {
		t.Fatalf("second analysis: %v", err)
	}
	if ai.calls != 1 {
		t.Fatalf("rerun without force must not call the model, calls=%d", ai.calls)
	}
	if len(second) != 1 || second[0].ID != first[0].ID || second[0].GapScore != first[0].GapScore {
		t.Fatalf("rerun returned different rows: %+v vs %+v", second, first)
	}
}

func TestAnalyzeSkillGaps_ForceReplacesAtomically(t *testing.T) {
	ai := newFakeAI(t)
	u, db := newTestUsecases(t, ai)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "gaps-force@example.com")
	iv := testutil.SeedInterview(t, ctx, db, owner.ID)
	q1 := testutil.SeedQuestion(t, ctx, db, iv.ID, 1, "SQL")
	q2 := testutil.SeedQuestion(t, ctx, db, iv.ID, 2, "SQL")
	testutil.SeedResponse(t, ctx, db, q1.ID, 40)

	ai.push("skill_recommendations_v1", map[string]any{"recommendations": map[string]any{}}, nil)
	first, err := u.AnalyzeSkillGaps(ctx, AnalyzeSkillGapsInput{UserID: owner.ID, InterviewID: iv.ID})
	if err != nil || len(first) != 1 || first[0].GapScore != 60 {
		t.Fatalf("first analysis: err=%v gaps=%+v", err, first)
	}

	// A second answer moves the SQL average from 40 to 60.
	testutil.SeedResponse(t, ctx, db, q2.ID, 80)

	ai.push("skill_recommendations_v1", map[string]any{"recommendations": map[string]any{}}, nil)
	forced, err := u.AnalyzeSkillGaps(ctx, AnalyzeSkillGapsInput{UserID: owner.ID, InterviewID: iv.ID, ForceReanalyze: true})
	if err != nil {
		t.Fatalf("forced analysis: %v", err)
	}
	if len(forced) != 1 || forced[0].GapScore != 40 || forced[0].ProficiencyLevel != types.ProficiencyModerate {
		t.Fatalf("forced analysis result %+v", forced)
	}

	stored, err := u.GetInterviewSkillGaps(ctx, owner.ID, iv.ID)
	if err != nil || len(stored) != 1 || stored[0].ID != forced[0].ID {
		t.Fatalf("prior rows must be replaced: err=%v stored=%+v", err, stored)
	}
}

func TestAnalyzeSkillGaps_RequiresAnswersAndOwnership(t *testing.T) {
	ai := newFakeAI(t)
	u, db := newTestUsecases(t, ai)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "gaps-validate@example.com")
	stranger := testutil.SeedUser(t, ctx, db, "gaps-validate-2@example.com")
	iv := testutil.SeedInterview(t, ctx, db, owner.ID)
	testutil.SeedQuestion(t, ctx, db, iv.ID, 1, "SQL")

	_, err := u.AnalyzeSkillGaps(ctx, AnalyzeSkillGapsInput{UserID: owner.ID, InterviewID: iv.ID})
	if apierr.CodeOf(err) != "no_answered_questions" {
		t.Fatalf("no answers: %v", err)
	}
	_, err = u.AnalyzeSkillGaps(ctx, AnalyzeSkillGapsInput{UserID: stranger.ID, InterviewID: iv.ID})
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("foreign interview: %v", err)
	}
}

func TestAnalyzeSkillGaps_RecommendationFailureFallsBack(t *testing.T) {
	ai := newFakeAI(t)
	u, db := newTestUsecases(t, ai)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "gaps-fallback@example.com")
	iv := testutil.SeedInterview(t, ctx, db, owner.ID)
	q1 := testutil.SeedQuestion(t, ctx, db, iv.ID, 1, "SQL")
	testutil.SeedResponse(t, ctx, db, q1.ID, 30)

	ai.push("skill_recommendations_v1", nil, fmt.Errorf("model unavailable"))
	gaps, err := u.AnalyzeSkillGaps(ctx, AnalyzeSkillGapsInput{UserID: owner.ID, InterviewID: iv.ID})
	if err != nil {
		t.Fatalf("analysis must survive a recommendation failure: %v", err)
	}
	if len(gaps) != 1 || gaps[0].Recommendation == "" {
		t.Fatalf("fallback recommendation missing: %+v", gaps)
	}
}
