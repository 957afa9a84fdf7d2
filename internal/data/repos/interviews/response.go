package interviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/interviewsim-backend/internal/domain"
	"github.com/yungbote/interviewsim-backend/internal/platform/logger"
)

type ResponseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, response *types.Response) error
	GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Response, error)
	ListByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Response, error)
	ListScoresByInterviewID(ctx context.Context, tx *gorm.DB, interviewID uuid.UUID) ([]float64, error)
}

type responseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	repoLog := baseLog.With("repo", "ResponseRepo")
	return &responseRepo{db: db, log: repoLog}
}

// Create inserts the one permitted response for a question. A duplicate
// submission surfaces as gorm.ErrDuplicatedKey from the unique index on
// question_id; callers map that to a conflict.
func (r *responseRepo) Create(ctx context.Context, tx *gorm.DB, response *types.Response) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(response).Error
}

func (r *responseRepo) GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Response, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.Response
	err := transaction.WithContext(ctx).Where("question_id = ?", questionID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *responseRepo) ListByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Response, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Response
	if len(questionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListScoresByInterviewID returns every persisted response score for an
// interview. Run inside the same transaction as the overall-score update so
// the recomputed mean reflects a consistent snapshot.
func (r *responseRepo) ListScoresByInterviewID(ctx context.Context, tx *gorm.DB, interviewID uuid.UUID) ([]float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var scores []float64
	if err := transaction.WithContext(ctx).
		Model(&types.Response{}).
		Joins("JOIN question ON question.id = response.question_id").
		Where("question.interview_id = ?", interviewID).
		Pluck("response.score", &scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
