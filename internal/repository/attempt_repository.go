package repository

import (
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByID(id string) (*model.Attempt, error)
	FindAllByUser(userID string) ([]model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	// GORM creates the associated answers when attempt.Answers is populated.
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id string) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.Preload("Answers").First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByUser(userID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("user_id = ?", userID).Order("submitted_at DESC").Find(&attempts).Error
	return attempts, err
}
