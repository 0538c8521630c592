package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	SourceTypeDocument = "document"
	SourceTypeVideo    = "video"
	SourceTypeCourse   = "course"
)

// ContentSource is the catalog of material quizzes are generated from:
// document bodies, video transcripts and course bodies.
type ContentSource struct {
	ID         string         `gorm:"primarykey" json:"id"`
	SourceType string         `json:"source_type" gorm:"not null;index"` // "document", "video", "course"
	Title      string         `json:"title"`
	Body       string         `json:"body" gorm:"type:text"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
