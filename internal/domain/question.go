package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	QuestionTechnical    = "technical"
	QuestionBehavioral   = "behavioral"
	QuestionCoding       = "coding"
	QuestionSystemDesign = "system_design"
)

// Question belongs to exactly one interview. OrderNumber values form a
// contiguous 1..N sequence assigned at creation and never change afterwards.
// ExpectedPoints are grading hints for the evaluator prompt, not ground truth
// shown back to candidates.
type Question struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_question_interview_order,priority:1" json:"interview_id"`
	Interview      *Interview     `gorm:"constraint:OnDelete:CASCADE;foreignKey:InterviewID;references:ID" json:"interview,omitempty"`
	QuestionText   string         `gorm:"type:text;not null" json:"question_text"`
	QuestionType   string         `gorm:"size:20;not null" json:"question_type"`
	Difficulty     string         `gorm:"size:20;not null" json:"difficulty"`
	SkillCategory  string         `gorm:"size:100;not null;index" json:"skill_category"`
	ExpectedPoints datatypes.JSON `gorm:"type:json" json:"expected_points"`
	OrderNumber    int            `gorm:"not null;uniqueIndex:idx_question_interview_order,priority:2" json:"order_number"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
}

func (Question) TableName() string { return "question" }

// IsValidQuestionType reports whether s is one of the persisted question types.
func IsValidQuestionType(s string) bool {
	switch s {
	case QuestionTechnical, QuestionBehavioral, QuestionCoding, QuestionSystemDesign:
		return true
	}
	return false
}
