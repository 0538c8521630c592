package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MasteryRepository interface {
	// Upsert applies one graded outcome to the (user, topic, subtopic) record.
	// The read-modify-write runs inside a transaction holding a row lock, so
	// concurrent attempts on the same key cannot lose increments.
	Upsert(userID, topic, subtopic string, correct bool, at time.Time) (*model.MasteryRecord, error)
	FindByID(id string) (*model.MasteryRecord, error)
	FindAllByUser(userID string) ([]model.MasteryRecord, error)
}

type masteryRepository struct {
	db *gorm.DB
}

func NewMasteryRepository(db *gorm.DB) MasteryRepository {
	return &masteryRepository{db: db}
}

func (r *masteryRepository) Upsert(userID, topic, subtopic string, correct bool, at time.Time) (*model.MasteryRecord, error) {
	var record model.MasteryRecord

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND topic = ? AND subtopic = ?", userID, topic, subtopic).
			First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = model.MasteryRecord{
				ID:       uuid.NewString(),
				UserID:   userID,
				Topic:    topic,
				Subtopic: subtopic,
			}
			record.Apply(correct, at)
			return tx.Create(&record).Error
		}
		if err != nil {
			return err
		}
		record.Apply(correct, at)
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *masteryRepository) FindByID(id string) (*model.MasteryRecord, error) {
	var record model.MasteryRecord
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *masteryRepository) FindAllByUser(userID string) ([]model.MasteryRecord, error) {
	var records []model.MasteryRecord
	err := r.db.Where("user_id = ?", userID).Order("topic ASC, subtopic ASC").Find(&records).Error
	return records, err
}
