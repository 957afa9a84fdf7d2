package interviews

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/interviewsim-backend/internal/data/repos/testutil"
	types "github.com/yungbote/interviewsim-backend/internal/domain"
)

func TestQuestionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewQuestionRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "questionrepo@example.com")
	iv := testutil.SeedInterview(t, ctx, tx, u.ID)

	batch := []*types.Question{}
	for i := 3; i >= 1; i-- {
		batch = append(batch, &types.Question{
			ID:             uuid.New(),
			InterviewID:    iv.ID,
			QuestionText:   "q",
			QuestionType:   types.QuestionTechnical,
			Difficulty:     types.DifficultyIntermediate,
			SkillCategory:  "SQL",
			ExpectedPoints: types.StringList([]string{"p1"}),
			OrderNumber:    i,
			CreatedAt:      time.Now().UTC(),
		})
	}
	if _, err := repo.CreateBatch(ctx, tx, batch); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if rows, err := repo.CreateBatch(ctx, tx, nil); err != nil || len(rows) != 0 {
		t.Fatalf("CreateBatch empty: err=%v len=%d", err, len(rows))
	}

	got, err := repo.GetByID(ctx, tx, batch[0].ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: err=%v got=%v", err, got)
	}
	if missing, err := repo.GetByID(ctx, tx, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetByID missing: err=%v got=%v", err, missing)
	}

	rows, err := repo.ListByInterviewID(ctx, tx, iv.ID)
	if err != nil || len(rows) != 3 {
		t.Fatalf("ListByInterviewID: err=%v len=%d", err, len(rows))
	}
	for i, row := range rows {
		if row.OrderNumber != i+1 {
			t.Fatalf("ListByInterviewID out of order at %d: got %d", i, row.OrderNumber)
		}
	}
}
