package interview

import (
	"context"
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

const defaultQuestionCount = 5

type CreateInterviewInput struct {
	UserID     uuid.UUID
	JobRole    string
	Difficulty string
	Count      int
	TypeFilter string // technical|behavioral|mixed
}

type CreateInterviewOutput struct {
	Interview *types.Interview  `json:"interview"`
	Questions []*types.Question `json:"questions"`
}

// CreateInterview generates the question batch first and only then opens the
// interview, so an interview with zero questions never exists.
func (u Usecases) CreateInterview(ctx context.Context, in CreateInterviewInput) (CreateInterviewOutput, error) {
	if in.UserID == uuid.Nil {
		return CreateInterviewOutput{}, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}

	role := strings.TrimSpace(in.JobRole)
	if n := utf8.RuneCountInString(role); n < 2 || n > 100 {
		return CreateInterviewOutput{}, apierr.New(http.StatusBadRequest, "invalid_job_role", fmt.Errorf("job_role must be 2-100 characters"))
	}

	difficulty := strings.ToLower(strings.TrimSpace(in.Difficulty))
	if difficulty == "" {
		difficulty = types.DifficultyIntermediate
	}
	if !types.IsValidDifficulty(difficulty) {
		return CreateInterviewOutput{}, apierr.New(http.StatusBadRequest, "invalid_difficulty", fmt.Errorf("unsupported difficulty %q", difficulty))
	}

	count := in.Count
	if count == 0 {
		count = defaultQuestionCount
	}
	if count < 1 || count > 10 {
		return CreateInterviewOutput{}, apierr.New(http.StatusBadRequest, "invalid_question_count", fmt.Errorf("question_count must be 1-10"))
	}

	filter := strings.ToLower(strings.TrimSpace(in.TypeFilter))
	if filter == "" {
		filter = TypeFilterMixed
	}
	switch filter {
	case TypeFilterTechnical, TypeFilterBehavioral, TypeFilterMixed:
	default:
		return CreateInterviewOutput{}, apierr.New(http.StatusBadRequest, "invalid_question_type", fmt.Errorf("unsupported question type %q", filter))
	}

	if u.deps.AI == nil {
		return CreateInterviewOutput{}, apierr.New(http.StatusInternalServerError, "ai_not_configured", fmt.Errorf("missing deps"))
	}

	// The model call stays outside the transaction; only validated output
	// touches the database.
	generated, err := runQuestionSetGenerator(ctx, u.deps.AI, questionSetInput{
		JobRole:    role,
		Difficulty: difficulty,
		Count:      count,
		TypeFilter: filter,
	})
	if err != nil {
		return CreateInterviewOutput{}, apierr.New(http.StatusBadGateway, "question_generation_failed", err)
	}

	now := time.Now().UTC()
	iv := &types.Interview{
		ID:         uuid.New(),
		UserID:     in.UserID,
		JobRole:    role,
		Difficulty: difficulty,
		Status:     types.InterviewInProgress,
		StartedAt:  now,
	}
	questions := make([]*types.Question, 0, len(generated))
	for i, g := range generated {
		questions = append(questions, &types.Question{
			ID:             uuid.New(),
			InterviewID:    iv.ID,
			QuestionText:   g.Text,
			QuestionType:   g.Type,
			Difficulty:     g.Difficulty,
			SkillCategory:  g.SkillCategory,
			ExpectedPoints: types.StringList(g.ExpectedPoints),
			OrderNumber:    i + 1,
			CreatedAt:      now,
		})
	}

	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.deps.Interviews.Create(ctx, tx, iv); err != nil {
			return err
		}
		_, err := u.deps.Questions.CreateBatch(ctx, tx, questions)
		return err
	})
	if err != nil {
		return CreateInterviewOutput{}, apierr.New(http.StatusInternalServerError, "create_interview_failed", err)
	}

	u.deps.Log.Info("interview created",
		"interview_id", iv.ID,
		"job_role", role,
		"difficulty", difficulty,
		"question_count", len(questions))
	return CreateInterviewOutput{Interview: iv, Questions: questions}, nil
}
