package model

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID               string         `gorm:"primarykey" json:"id"`
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description,omitempty" gorm:"type:text"`
	Questions        []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TimeLimitMinutes *int           `json:"time_limit_minutes,omitempty"`
	PassingScore     int            `json:"passing_score" gorm:"default:70"`
	SourceType       string         `json:"source_type,omitempty" gorm:"index"`
	SourceID         string         `json:"source_id,omitempty" gorm:"index"`
	GeneratedBy      string         `json:"generated_by,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
