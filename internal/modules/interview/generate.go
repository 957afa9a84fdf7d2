package interview

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	types "github.com/yungbote/interviewsim-backend/internal/domain"
)

const (
	TypeFilterTechnical  = "technical"
	TypeFilterBehavioral = "behavioral"
	TypeFilterMixed      = "mixed"
)

type questionSetInput struct {
	JobRole    string
	Difficulty string
	Count      int
	TypeFilter string // technical|behavioral|mixed
}

type generatedQuestion struct {
	Text           string
	Type           string
	Difficulty     string
	SkillCategory  string
	ExpectedPoints []string
}

// runQuestionSetGenerator asks the model for a full question batch and
// validates it into exactly in.Count usable questions. Any shortfall fails the
// whole generation; callers never persist a partial batch.
func runQuestionSetGenerator(ctx context.Context, ai interface {
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error)
}, in questionSetInput) ([]generatedQuestion, error) {
	if ai == nil {
		return nil, fmt.Errorf("ai required")
	}

	sys, usr := promptQuestionSet(in)
	obj, err := ai.GenerateJSON(ctx, sys, usr, "question_set_v1", schemaQuestionSetV1(in.Count))
	if err != nil {
		return nil, err
	}
	return coerceQuestionSetResult(obj, in)
}

func promptQuestionSet(in questionSetInput) (system string, user string) {
	typeLine := "Mix technical and behavioral questions."
	switch in.TypeFilter {
	case TypeFilterTechnical:
		typeLine = "Every question must be technical (coding and system_design count as technical)."
	case TypeFilterBehavioral:
		typeLine = "Every question must be behavioral."
	}

	system = strings.TrimSpace(`
You are an experienced interviewer preparing a simulated job interview.
You must return ONLY valid JSON matching the schema (no markdown fences, no extra keys).

Rules:
- Produce exactly the requested number of questions, ordered from easier to harder.
- type is one of: technical, behavioral, coding, system_design.
- skill_category names the single skill the question probes (for example "SQL", "Concurrency", "Communication").
- expected_points lists 2-5 short bullet points a strong answer would cover. They are grading hints, not a script.
- Questions must be answerable in free text within a few minutes; no multi-part essays.
`)

	user = "JOB_ROLE: " + in.JobRole + "\n" +
		"DIFFICULTY: " + in.Difficulty + "\n" +
		"QUESTION_COUNT: " + strconv.Itoa(in.Count) + "\n" +
		"TYPE_CONSTRAINT: " + typeLine
	return system, user
}

func schemaQuestionSetV1(count int) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": count,
				"maxItems": count,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_text": map[string]any{"type": "string"},
						"question_type": map[string]any{
							"type": "string",
							"enum": []any{"technical", "behavioral", "coding", "system_design"},
						},
						"difficulty":     map[string]any{"type": "string"},
						"skill_category": map[string]any{"type": "string"},
						"expected_points": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"required":             []any{"question_text", "question_type", "difficulty", "skill_category", "expected_points"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	}
}

func coerceQuestionSetResult(obj map[string]any, in questionSetInput) ([]generatedQuestion, error) {
	raw, ok := obj["questions"].([]any)
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("no questions in model output")
	}

	out := make([]generatedQuestion, 0, in.Count)
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok || m == nil {
			continue
		}
		text := strings.TrimSpace(anyString(m["question_text"]))
		if text == "" {
			continue
		}

		q := generatedQuestion{
			Text:           clampText(text, 2000),
			Type:           coerceQuestionType(anyString(m["question_type"]), in.TypeFilter),
			Difficulty:     strings.ToLower(strings.TrimSpace(anyString(m["difficulty"]))),
			SkillCategory:  clampText(anyString(m["skill_category"]), 100),
			ExpectedPoints: anyStringList(m["expected_points"]),
		}
		if !types.IsValidDifficulty(q.Difficulty) {
			q.Difficulty = in.Difficulty
		}
		if q.SkillCategory == "" {
			q.SkillCategory = in.JobRole
		}
		out = append(out, q)
		if len(out) == in.Count {
			break
		}
	}

	if len(out) != in.Count {
		return nil, fmt.Errorf("model produced %d usable questions, want %d", len(out), in.Count)
	}
	return out, nil
}

// coerceQuestionType snaps a possibly-misclassified type onto the allowed set
// while honoring the caller's filter. coding and system_design remain valid
// under a technical filter.
func coerceQuestionType(raw string, filter string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	switch filter {
	case TypeFilterBehavioral:
		return types.QuestionBehavioral
	case TypeFilterTechnical:
		if t == types.QuestionCoding || t == types.QuestionSystemDesign {
			return t
		}
		return types.QuestionTechnical
	}
	if types.IsValidQuestionType(t) {
		return t
	}
	return types.QuestionTechnical
}
