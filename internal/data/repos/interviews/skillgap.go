package interviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/interviewsim-backend/internal/domain"
	"github.com/yungbote/interviewsim-backend/internal/platform/logger"
)

type SkillGapRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, gaps []*types.SkillGap) ([]*types.SkillGap, error)
	ListByInterviewID(ctx context.Context, tx *gorm.DB, interviewID uuid.UUID) ([]*types.SkillGap, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SkillGap, error)
	DeleteByInterviewID(ctx context.Context, tx *gorm.DB, interviewID uuid.UUID) error
}

type skillGapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillGapRepo(db *gorm.DB, baseLog *logger.Logger) SkillGapRepo {
	repoLog := baseLog.With("repo", "SkillGapRepo")
	return &skillGapRepo{db: db, log: repoLog}
}

func (r *skillGapRepo) CreateBatch(ctx context.Context, tx *gorm.DB, gaps []*types.SkillGap) ([]*types.SkillGap, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(gaps) == 0 {
		return []*types.SkillGap{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&gaps).Error; err != nil {
		return nil, err
	}
	return gaps, nil
}

// Listings put the biggest gaps first (gap_score DESC) so weak skills lead.
func (r *skillGapRepo) ListByInterviewID(ctx context.Context, tx *gorm.DB, interviewID uuid.UUID) ([]*types.SkillGap, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SkillGap
	if err := transaction.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("gap_score DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skillGapRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SkillGap, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SkillGap
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("gap_score DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skillGapRepo) DeleteByInterviewID(ctx context.Context, tx *gorm.DB, interviewID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Delete(&types.SkillGap{}).Error
}
