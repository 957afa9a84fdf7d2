package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/interviewsim-backend/internal/data/repos/interviews"
	"github.com/yungbote/interviewsim-backend/internal/data/repos/testutil"
	"github.com/yungbote/interviewsim-backend/internal/platform/rubric"
)

// fakeAI replays scripted payloads per schema name, in order.
type fakeAI struct {
	t       *testing.T
	scripts map[string][]fakeAIResult
	calls   int
}

type fakeAIResult struct {
	obj map[string]any
	err error
}

func newFakeAI(t *testing.T) *fakeAI {
	return &fakeAI{t: t, scripts: map[string][]fakeAIResult{}}
}

func (f *fakeAI) push(schemaName string, obj map[string]any, err error) {
	f.scripts[schemaName] = append(f.scripts[schemaName], fakeAIResult{obj: obj, err: err})
}

func (f *fakeAI) GenerateJSON(_ context.Context, _ string, _ string, schemaName string, _ map[string]any) (map[string]any, error) {
	f.calls++
	queue := f.scripts[schemaName]
	if len(queue) == 0 {
		f.t.Fatalf("unexpected GenerateJSON call for schema %q", schemaName)
	}
	next := queue[0]
	f.scripts[schemaName] = queue[1:]
	return next.obj, next.err
}

// fakeCache is an in-memory stand-in for the redis score cache.
type fakeCache struct {
	entries map[string][]byte
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	f.sets++
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
	}
	f.deletes++
	return nil
}

func (f *fakeCache) Close() error { return nil }

func newTestUsecases(t *testing.T, ai *fakeAI) (Usecases, *gorm.DB) {
	t.Helper()

	db := testutil.DB(t)
	log := testutil.Logger(t)

	r, err := rubric.Load()
	if err != nil {
		t.Fatalf("load rubric: %v", err)
	}

	u := New(UsecasesDeps{
		DB:         db,
		Log:        log,
		AI:         ai,
		Rubric:     r,
		Interviews: interviews.NewInterviewRepo(db, log),
		Questions:  interviews.NewQuestionRepo(db, log),
		Responses:  interviews.NewResponseRepo(db, log),
		SkillGaps:  interviews.NewSkillGapRepo(db, log),
	})
	return u, db
}

func newTestUsecasesWithCache(t *testing.T, ai *fakeAI, cache *fakeCache) (Usecases, *gorm.DB) {
	t.Helper()

	u, db := newTestUsecases(t, ai)
	u.deps.Cache = cache
	return u, db
}

func questionSetPayload(n int, qtype string, skill string) map[string]any {
	items := make([]any, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, map[string]any{
			"question_text":   fmt.Sprintf("Question %d?", i+1),
			"question_type":   qtype,
			"difficulty":      "intermediate",
			"skill_category":  skill,
			"expected_points": []any{"point one", "point two"},
		})
	}
	return map[string]any{"questions": items}
}

func evaluationPayload(score any) map[string]any {
	return map[string]any{
		"score":        score,
		"feedback":     "Solid answer with room to grow.",
		"strengths":    []any{"clear structure"},
		"improvements": []any{"go deeper on tradeoffs"},
		"keywords":     []any{"index"},
	}
}
