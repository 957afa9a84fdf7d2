package interview

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/interviewsim-backend/internal/data/repos/testutil"
	types "github.com/yungbote/interviewsim-backend/internal/domain"
	"github.com/yungbote/interviewsim-backend/internal/platform/apierr"
)

func TestCompleteInterview_TerminalStates(t *testing.T) {
	ai := newFakeAI(t)
	u, db := newTestUsecases(t, ai)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "complete-terminal@example.com")
	stranger := testutil.SeedUser(t, ctx, db, "complete-terminal-2@example.com")

	_, err := u.CompleteInterview(ctx, CompleteInterviewInput{UserID: owner.ID, InterviewID: uuid.New()})
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("missing interview: %v", err)
	}

	iv := testutil.SeedInterview(t, ctx, db, owner.ID)
	_, err = u.CompleteInterview(ctx, CompleteInterviewInput{UserID: stranger.ID, InterviewID: iv.ID})
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("foreign interview: %v", err)
	}

	abandoned := testutil.SeedInterview(t, ctx, db, owner.ID)
	abandoned.Status = types.InterviewAbandoned
	if err := u.deps.Interviews.Update(ctx, nil, abandoned); err != nil {
		t.Fatalf("mark abandoned: %v", err)
	}
	_, err = u.CompleteInterview(ctx, CompleteInterviewInput{UserID: owner.ID, InterviewID: abandoned.ID})
	if apierr.StatusOf(err) != http.StatusConflict {
		t.Fatalf("abandoned interview must not complete: %v", err)
	}
	got, _ := u.deps.Interviews.GetByID(ctx, nil, abandoned.ID)
	if got.Status != types.InterviewAbandoned {
		t.Fatalf("abandoned stays abandoned, got %q", got.Status)
	}
}
