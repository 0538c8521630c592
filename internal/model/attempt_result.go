package model

import (
	"time"

	"gorm.io/gorm"
)

// AttemptResult is the single source of truth for an attempt's score.
// Immutable once created; MasteryRecord rows can be rebuilt from it.
type AttemptResult struct {
	ID              string           `gorm:"primarykey" json:"id"`
	AttemptID       string           `json:"attempt_id" gorm:"not null;uniqueIndex"`
	QuizID          string           `json:"quiz_id" gorm:"not null;index"`
	UserID          string           `json:"user_id" gorm:"not null;index"`
	Score           int              `json:"score"` // 0-100 aggregate
	Passed          bool             `json:"passed"`
	QuestionResults []QuestionResult `json:"question_results,omitempty" gorm:"foreignKey:AttemptResultID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

type QuestionResult struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	AttemptResultID string         `json:"attempt_result_id" gorm:"not null;index"`
	QuestionID      string         `json:"question_id" gorm:"not null"`
	UserAnswer      string         `json:"user_answer" gorm:"type:text"`
	Correct         bool           `json:"correct"`
	Score           int            `json:"score"` // 0-100
	Feedback        string         `json:"feedback,omitempty" gorm:"type:text"`
	Keywords        []string       `json:"keywords,omitempty" gorm:"serializer:json"`
	Suggestions     []string       `json:"suggestions,omitempty" gorm:"serializer:json"`
	Confidence      float64        `json:"confidence"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
