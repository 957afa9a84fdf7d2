package interviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/interviewsim-backend/internal/domain"
	"github.com/yungbote/interviewsim-backend/internal/platform/logger"
)

type InterviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, interview *types.Interview) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Interview, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Interview, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Interview, error)
	Update(ctx context.Context, tx *gorm.DB, interview *types.Interview) error
	SetOverallScore(ctx context.Context, tx *gorm.DB, id uuid.UUID, score *float64) error
}

type interviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInterviewRepo(db *gorm.DB, baseLog *logger.Logger) InterviewRepo {
	repoLog := baseLog.With("repo", "InterviewRepo")
	return &interviewRepo{db: db, log: repoLog}
}

func (r *interviewRepo) Create(ctx context.Context, tx *gorm.DB, interview *types.Interview) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(interview).Error
}

func (r *interviewRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Interview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.Interview
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByIDForUpdate locks the interview row so concurrent answer submissions
// recompute the overall score against a consistent response snapshot. sqlite
// has no row locks; its writer lock serializes submissions instead.
func (r *interviewRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Interview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx)
	if transaction.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row types.Interview
	err := q.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *interviewRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Interview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Interview
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *interviewRepo) Update(ctx context.Context, tx *gorm.DB, interview *types.Interview) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(interview).Error
}

func (r *interviewRepo) SetOverallScore(ctx context.Context, tx *gorm.DB, id uuid.UUID, score *float64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Interview{}).
		Where("id = ?", id).
		Update("overall_score", score).Error
}
