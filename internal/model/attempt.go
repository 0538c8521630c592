package model

import (
	"time"

	"gorm.io/gorm"
)

type Attempt struct {
	ID          string         `gorm:"primarykey" json:"id"`
	QuizID      string         `json:"quiz_id" gorm:"not null;index"`
	UserID      string         `json:"user_id" gorm:"not null;index"`
	Answers     []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	SubmittedAt time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Answer struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	AttemptID  string         `json:"attempt_id" gorm:"not null;index"`
	QuestionID string         `json:"question_id" gorm:"not null;index"`
	Value      string         `json:"value" gorm:"type:text;not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
