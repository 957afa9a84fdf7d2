package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Response is the single permitted answer record for a question. The unique
// index on QuestionID is the storage-level guarantee: concurrent submissions
// for the same question race on it and exactly one wins. Rows are created
// once and never mutated by normal flow.
type Response struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"question_id"`
	Question     *Question      `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	AnswerText   string         `gorm:"type:text;not null" json:"answer_text"`
	Score        float64        `gorm:"not null" json:"score"`
	Feedback     string         `gorm:"type:text" json:"feedback"`
	Strengths    datatypes.JSON `gorm:"type:json" json:"strengths"`
	Improvements datatypes.JSON `gorm:"type:json" json:"improvements"`
	Keywords     datatypes.JSON `gorm:"type:json" json:"keywords"`
	TimeTaken    *int           `json:"time_taken,omitempty"`
	AnsweredAt   time.Time      `gorm:"not null" json:"answered_at"`
}

func (Response) TableName() string { return "response" }
