package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProficiencyWeak     = "weak"
	ProficiencyModerate = "moderate"
	ProficiencyStrong   = "strong"
)

// SkillGap is a derived per-skill assessment for one interview. GapScore is
// 100 minus the average category score, so it shrinks as proficiency rises.
// An analysis rerun with force replaces the interview's rows atomically; the
// composite unique index keeps one row per skill per interview.
type SkillGap struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	InterviewID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_skill_gap_interview_skill,priority:1" json:"interview_id"`
	Interview        *Interview `gorm:"constraint:OnDelete:CASCADE;foreignKey:InterviewID;references:ID" json:"interview,omitempty"`
	SkillName        string     `gorm:"size:100;not null;uniqueIndex:idx_skill_gap_interview_skill,priority:2" json:"skill_name"`
	ProficiencyLevel string     `gorm:"size:20;not null" json:"proficiency_level"`
	GapScore         float64    `gorm:"not null" json:"gap_score"`
	Recommendation   string     `gorm:"type:text" json:"recommendation"`
	IdentifiedAt     time.Time  `gorm:"not null" json:"identified_at"`
}

func (SkillGap) TableName() string { return "skill_gap" }
