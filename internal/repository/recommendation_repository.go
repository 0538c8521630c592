package repository

import (
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
	"gorm.io/gorm"
)

type RecommendationRepository interface {
	Create(rec *model.ReviewRecommendation) error
	CreateBatch(recs []model.ReviewRecommendation) error
	FindByID(id string) (*model.ReviewRecommendation, error)
	FindPendingByUser(userID string) ([]model.ReviewRecommendation, error)
	Update(rec *model.ReviewRecommendation) error
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Create(rec *model.ReviewRecommendation) error {
	return r.db.Create(rec).Error
}

func (r *recommendationRepository) CreateBatch(recs []model.ReviewRecommendation) error {
	if len(recs) == 0 {
		return nil
	}
	return r.db.Create(&recs).Error
}

func (r *recommendationRepository) FindByID(id string) (*model.ReviewRecommendation, error) {
	var rec model.ReviewRecommendation
	if err := r.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepository) FindPendingByUser(userID string) ([]model.ReviewRecommendation, error) {
	var recs []model.ReviewRecommendation
	// Stable order: highest priority first, then insertion order.
	err := r.db.
		Where("user_id = ? AND status = ?", userID, model.RecommendationStatusPending).
		Order("priority DESC, created_at ASC, id ASC").
		Find(&recs).Error
	return recs, err
}

func (r *recommendationRepository) Update(rec *model.ReviewRecommendation) error {
	return r.db.Save(rec).Error
}
