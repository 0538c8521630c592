package model

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// MasteryRecord keeps rolling correctness statistics for one
// (user, topic, subtopic) key. Rows are only ever incremented.
type MasteryRecord struct {
	ID           string         `gorm:"primarykey" json:"id"`
	UserID       string         `json:"user_id" gorm:"not null;uniqueIndex:idx_mastery_key"`
	Topic        string         `json:"topic" gorm:"not null;uniqueIndex:idx_mastery_key"`
	Subtopic     string         `json:"subtopic" gorm:"uniqueIndex:idx_mastery_key"`
	CorrectCount int            `json:"correct_count"`
	TotalCount   int            `json:"total_count"`
	Mastery      int            `json:"mastery"` // round(correct/total*100)
	LastQuizDate time.Time      `json:"last_quiz_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Apply folds one graded topic outcome into the record.
// TotalCount is monotonically non-decreasing.
func (m *MasteryRecord) Apply(correct bool, at time.Time) {
	m.TotalCount++
	if correct {
		m.CorrectCount++
	}
	m.Mastery = int(math.Round(float64(m.CorrectCount) / float64(m.TotalCount) * 100))
	m.LastQuizDate = at
}
