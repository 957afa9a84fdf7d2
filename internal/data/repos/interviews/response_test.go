package interviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/interviewsim-backend/internal/data/repos/testutil"
	types "github.com/yungbote/interviewsim-backend/internal/domain"
)

func TestResponseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewResponseRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "responserepo@example.com")
	iv := testutil.SeedInterview(t, ctx, tx, u.ID)
	q1 := testutil.SeedQuestion(t, ctx, tx, iv.ID, 1, "SQL")
	q2 := testutil.SeedQuestion(t, ctx, tx, iv.ID, 2, "Go")
	q3 := testutil.SeedQuestion(t, ctx, tx, iv.ID, 3, "Go")

	testutil.SeedResponse(t, ctx, tx, q1.ID, 80)
	testutil.SeedResponse(t, ctx, tx, q2.ID, 60)

	got, err := repo.GetByQuestionID(ctx, tx, q1.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByQuestionID: err=%v got=%v", err, got)
	}
	if got.Score != 80 {
		t.Fatalf("GetByQuestionID wrong row: %+v", got)
	}
	if unanswered, err := repo.GetByQuestionID(ctx, tx, q3.ID); err != nil || unanswered != nil {
		t.Fatalf("GetByQuestionID unanswered: err=%v got=%v", err, unanswered)
	}

	rows, err := repo.ListByQuestionIDs(ctx, tx, []uuid.UUID{q1.ID, q2.ID, q3.ID})
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListByQuestionIDs: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.ListByQuestionIDs(ctx, tx, nil); err != nil || len(rows) != 0 {
		t.Fatalf("ListByQuestionIDs empty: err=%v len=%d", err, len(rows))
	}

	scores, err := repo.ListScoresByInterviewID(ctx, tx, iv.ID)
	if err != nil || len(scores) != 2 {
		t.Fatalf("ListScoresByInterviewID: err=%v len=%d", err, len(scores))
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	if sum != 140 {
		t.Fatalf("ListScoresByInterviewID wrong scores: %v", scores)
	}

	other := testutil.SeedInterview(t, ctx, tx, u.ID)
	if scores, err := repo.ListScoresByInterviewID(ctx, tx, other.ID); err != nil || len(scores) != 0 {
		t.Fatalf("ListScoresByInterviewID other interview: err=%v len=%d", err, len(scores))
	}

	// Last, because a constraint violation ends the usefulness of the tx on
	// postgres.
	dup := &types.Response{
		ID:         uuid.New(),
		QuestionID: q1.ID,
		AnswerText: "second answer",
		Score:      10,
		AnsweredAt: time.Now().UTC(),
	}
	err = repo.Create(ctx, tx, dup)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("Create duplicate should map to ErrDuplicatedKey, got %v", err)
	}
}
