package interview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/interviewsim-backend/internal/domain"
	"github.com/yungbote/interviewsim-backend/internal/platform/apierr"
)

type AnalyzeSkillGapsInput struct {
	UserID         uuid.UUID
	InterviewID    uuid.UUID
	ForceReanalyze bool
}

// AnalyzeSkillGaps groups the interview's answers by skill category and
// derives a proficiency level, gap score and recommendation per category.
// Without force, a prior analysis is returned unchanged and no model call is
// made. With force, the prior rows are replaced atomically.
func (u Usecases) AnalyzeSkillGaps(ctx context.Context, in AnalyzeSkillGapsInput) ([]*types.SkillGap, error) {
	if in.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if in.InterviewID == uuid.Nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_interview_id", fmt.Errorf("missing interview_id"))
	}

	iv, err := u.deps.Interviews.GetByID(ctx, nil, in.InterviewID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "load_interview_failed", err)
	}
	if iv == nil || iv.UserID != in.UserID {
		return nil, apierr.New(http.StatusNotFound, "interview_not_found", nil)
	}

	if !in.ForceReanalyze {
		existing, err := u.deps.SkillGaps.ListByInterviewID(ctx, nil, iv.ID)
		if err != nil {
			return nil, apierr.New(http.StatusInternalServerError, "load_skill_gaps_failed", err)
		}
		if len(existing) > 0 {
			return existing, nil
		}
	}

	questions, err := u.deps.Questions.ListByInterviewID(ctx, nil, iv.ID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "load_questions_failed", err)
	}
	ids := make([]uuid.UUID, 0, len(questions))
	skillByQuestion := make(map[uuid.UUID]string, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
		skillByQuestion[q.ID] = q.SkillCategory
	}
	responses, err := u.deps.Responses.ListByQuestionIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "load_responses_failed", err)
	}
	if len(responses) == 0 {
		return nil, apierr.New(http.StatusBadRequest, "no_answered_questions", fmt.Errorf("skill gap analysis requires at least one answered question"))
	}

	assessments := buildSkillAssessments(u, skillByQuestion, responses)

	// One batched model call covers every category that needs coaching.
	// Recommendation text is supportive, so a model failure falls back to a
	// generic line instead of failing the analysis.
	recs := map[string]string{}
	if u.deps.AI != nil {
		if needy := needsRecommendation(assessments); len(needy) > 0 {
			recs, err = runRecommendationBatch(ctx, u.deps.AI, iv.JobRole, needy)
			if err != nil {
				u.deps.Log.Warn("skill recommendation generation failed", "interview_id", iv.ID, "error", err)
				recs = map[string]string{}
			}
		}
	}

	now := time.Now().UTC()
	gaps := make([]*types.SkillGap, 0, len(assessments))
	for _, a := range assessments {
		gaps = append(gaps, &types.SkillGap{
			ID:               uuid.New(),
			UserID:           in.UserID,
			InterviewID:      iv.ID,
			SkillName:        a.Skill,
			ProficiencyLevel: a.Proficiency,
			GapScore:         a.GapScore,
			Recommendation:   recommendationFor(a, recs),
			IdentifiedAt:     now,
		})
	}

	var stored []*types.SkillGap
	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The interview row lock serializes concurrent analyses, same as the
		// overall score recomputation on answer submission.
		locked, err := u.deps.Interviews.GetByIDForUpdate(ctx, tx, iv.ID)
		if err != nil {
			return err
		}
		if locked == nil || locked.UserID != in.UserID {
			return apierr.New(http.StatusNotFound, "interview_not_found", nil)
		}

		if in.ForceReanalyze {
			if err := u.deps.SkillGaps.DeleteByInterviewID(ctx, tx, iv.ID); err != nil {
				return err
			}
		} else {
			// A concurrent first run may have committed after the unlocked
			// check above; its rows win.
			existing, err := u.deps.SkillGaps.ListByInterviewID(ctx, tx, iv.ID)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				stored = existing
				return nil
			}
		}

		created, err := u.deps.SkillGaps.CreateBatch(ctx, tx, gaps)
		if err != nil {
			return err
		}
		stored = created
		return nil
	})
	if err != nil {
		var ae *apierr.Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, apierr.New(http.StatusInternalServerError, "save_skill_gaps_failed", err)
	}

	u.deps.Log.Info("skill gaps analyzed",
		"interview_id", iv.ID,
		"categories", len(stored),
		"forced", in.ForceReanalyze)
	return stored, nil
}

func (u Usecases) GetInterviewSkillGaps(ctx context.Context, userID uuid.UUID, interviewID uuid.UUID) ([]*types.SkillGap, error) {
	if userID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if interviewID == uuid.Nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_interview_id", fmt.Errorf("missing interview_id"))
	}

	iv, err := u.deps.Interviews.GetByID(ctx, nil, interviewID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "load_interview_failed", err)
	}
	if iv == nil || iv.UserID != userID {
		return nil, apierr.New(http.StatusNotFound, "interview_not_found", nil)
	}

	rows, err := u.deps.SkillGaps.ListByInterviewID(ctx, nil, iv.ID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "load_skill_gaps_failed", err)
	}
	return rows, nil
}

func (u Usecases) ListUserSkillGaps(ctx context.Context, userID uuid.UUID) ([]*types.SkillGap, error) {
	if userID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	rows, err := u.deps.SkillGaps.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "list_skill_gaps_failed", err)
	}
	return rows, nil
}

type skillAssessment struct {
	Skill        string
	AverageScore float64
	Proficiency  string
	GapScore     float64
	Answered     int
}

func buildSkillAssessments(u Usecases, skillByQuestion map[uuid.UUID]string, responses []*types.Response) []skillAssessment {
	type agg struct {
		sum float64
		n   int
	}
	bySkill := map[string]*agg{}
	for _, r := range responses {
		skill := skillByQuestion[r.QuestionID]
		if skill == "" {
			continue
		}
		a := bySkill[skill]
		if a == nil {
			a = &agg{}
			bySkill[skill] = a
		}
		a.sum += r.Score
		a.n++
	}

	out := make([]skillAssessment, 0, len(bySkill))
	for skill, a := range bySkill {
		avg := a.sum / float64(a.n)
		out = append(out, skillAssessment{
			Skill:        skill,
			AverageScore: round1(avg),
			Proficiency:  u.deps.Rubric.ProficiencyLevel(avg),
			GapScore:     round1(100 - avg),
			Answered:     a.n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GapScore != out[j].GapScore {
			return out[i].GapScore > out[j].GapScore
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}

func needsRecommendation(assessments []skillAssessment) []skillAssessment {
	out := []skillAssessment{}
	for _, a := range assessments {
		if a.Proficiency != types.ProficiencyStrong {
			out = append(out, a)
		}
	}
	return out
}

func recommendationFor(a skillAssessment, recs map[string]string) string {
	if r := strings.TrimSpace(recs[a.Skill]); r != "" {
		return clampText(r, 1000)
	}
	if a.Proficiency == types.ProficiencyStrong {
		return fmt.Sprintf("Strong showing in %s. Keep it sharp with occasional practice at higher difficulty.", a.Skill)
	}
	return fmt.Sprintf("Practice %s with focused exercises and review the feedback on your answers in this area.", a.Skill)
}

func runRecommendationBatch(ctx context.Context, ai interface {
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error)
}, jobRole string, assessments []skillAssessment) (map[string]string, error) {
	sys := strings.TrimSpace(`
You coach candidates after a simulated job interview.
You must return ONLY valid JSON matching the schema (no markdown fences, no extra keys).

Rules:
- For each listed skill, write one concrete 1-2 sentence recommendation: what to practice and how.
- Tailor recommendations to the job role and the observed score.
- recommendations maps each skill name, exactly as given, to its recommendation text.
`)

	var b strings.Builder
	fmt.Fprintf(&b, "JOB_ROLE: %s\n\nSKILLS:\n", jobRole)
	for _, a := range assessments {
		fmt.Fprintf(&b, "- %s: average score %.1f, proficiency %s\n", a.Skill, a.AverageScore, a.Proficiency)
	}

	obj, err := ai.GenerateJSON(ctx, sys, b.String(), "skill_recommendations_v1", schemaSkillRecommendationsV1())
	if err != nil {
		return nil, err
	}

	out := map[string]string{}
	if m, ok := obj["recommendations"].(map[string]any); ok {
		for skill, v := range m {
			if text := strings.TrimSpace(anyString(v)); text != "" {
				out[skill] = text
			}
		}
	}
	return out, nil
}

func schemaSkillRecommendationsV1() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recommendations": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"recommendations"},
		"additionalProperties": false,
	}
}
