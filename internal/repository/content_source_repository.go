package repository

import (
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
	"gorm.io/gorm"
)

type ContentSourceRepository interface {
	Create(source *model.ContentSource) error
	FindByTypeAndID(sourceType, id string) (*model.ContentSource, error)
	FindRecentByTopic(topic string, limit int) ([]model.ContentSource, error)
}

type contentSourceRepository struct {
	db *gorm.DB
}

func NewContentSourceRepository(db *gorm.DB) ContentSourceRepository {
	return &contentSourceRepository{db: db}
}

func (r *contentSourceRepository) Create(source *model.ContentSource) error {
	return r.db.Create(source).Error
}

func (r *contentSourceRepository) FindByTypeAndID(sourceType, id string) (*model.ContentSource, error) {
	var source model.ContentSource
	if err := r.db.Where("source_type = ? AND id = ?", sourceType, id).First(&source).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *contentSourceRepository) FindRecentByTopic(topic string, limit int) ([]model.ContentSource, error) {
	var sources []model.ContentSource
	err := r.db.
		Where("title ILIKE ?", "%"+topic+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&sources).Error
	return sources, err
}
