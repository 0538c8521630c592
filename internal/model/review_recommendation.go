package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RecommendationTypeQuiz     = "quiz"
	RecommendationTypeReview   = "review"
	RecommendationTypePractice = "practice"
)

const (
	RecommendationStatusPending   = "pending"
	RecommendationStatusCompleted = "completed"
	RecommendationStatusSkipped   = "skipped"
)

type ReviewRecommendation struct {
	ID              string         `gorm:"primarykey" json:"id"`
	UserID          string         `json:"user_id" gorm:"not null;index"`
	MasteryRecordID string         `json:"mastery_record_id" gorm:"not null;index"`
	Type            string         `json:"type" gorm:"not null"` // "quiz", "review", "practice"
	Priority        int            `json:"priority"`
	Content         string         `json:"content" gorm:"type:text"`
	Resources       []string       `json:"resources,omitempty" gorm:"serializer:json"`
	Status          string         `json:"status" gorm:"default:'pending'"` // "pending", "completed", "skipped"
	Effectiveness   *float64       `json:"effectiveness,omitempty"`         // 0-1, set only on completion
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
