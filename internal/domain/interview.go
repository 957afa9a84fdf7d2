package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

const (
	InterviewInProgress = "in_progress"
	InterviewCompleted  = "completed"
	InterviewAbandoned  = "abandoned"
)

// Interview is one session of role/difficulty-scoped question answering.
// Status only moves forward (in_progress -> completed | abandoned); nothing
// leaves a terminal state. OverallScore is the mean of all persisted response
// scores and stays nil until the first answer lands.
type Interview struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	JobRole         string     `gorm:"size:100;not null" json:"job_role"`
	Difficulty      string     `gorm:"size:20;not null" json:"difficulty"`
	Status          string     `gorm:"size:20;not null;index;default:in_progress" json:"status"`
	OverallScore    *float64   `json:"overall_score,omitempty"`
	StartedAt       time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

func (Interview) TableName() string { return "interview" }

// IsValidDifficulty reports whether s is one of the accepted difficulty labels.
func IsValidDifficulty(s string) bool {
	switch s {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}
