package repository

import (
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
	"gorm.io/gorm"
)

type AttemptResultRepository interface {
	Create(result *model.AttemptResult) error
	FindByID(id string) (*model.AttemptResult, error)
	FindByAttemptID(attemptID string) (*model.AttemptResult, error)
	FindAllByUser(userID string) ([]model.AttemptResult, error)
}

type attemptResultRepository struct {
	db *gorm.DB
}

func NewAttemptResultRepository(db *gorm.DB) AttemptResultRepository {
	return &attemptResultRepository{db: db}
}

func (r *attemptResultRepository) Create(result *model.AttemptResult) error {
	return r.db.Create(result).Error
}

func (r *attemptResultRepository) FindByID(id string) (*model.AttemptResult, error) {
	var result model.AttemptResult
	if err := r.db.Preload("QuestionResults").First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *attemptResultRepository) FindByAttemptID(attemptID string) (*model.AttemptResult, error) {
	var result model.AttemptResult
	if err := r.db.Preload("QuestionResults").First(&result, "attempt_id = ?", attemptID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *attemptResultRepository) FindAllByUser(userID string) ([]model.AttemptResult, error) {
	var results []model.AttemptResult
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&results).Error
	return results, err
}
