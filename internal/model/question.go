package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeOpen           = "open"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyMixed  = "mixed"
)

type Question struct {
	ID            string         `gorm:"primarykey" json:"id"`
	QuizID        string         `json:"quiz_id" gorm:"not null;index"`
	Text          string         `json:"text" gorm:"type:text;not null"`
	Type          string         `json:"type" gorm:"not null"` // "multiple_choice", "true_false", "open"
	Options       []string       `json:"options,omitempty" gorm:"serializer:json"`
	CorrectAnswer string         `json:"correct_answer" gorm:"type:text"`
	Explanation   string         `json:"explanation" gorm:"type:text"`
	Difficulty    string         `json:"difficulty" gorm:"default:'medium'"`
	Position      int            `json:"position" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
