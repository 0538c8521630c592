package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/dto"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/repository"
)

// MasteryTrackerService maintains rolling per-(user, topic) correctness
// statistics and triggers review recommendations whenever mastery drops
// below the threshold.
type MasteryTrackerService interface {
	RecordTopicScore(ctx context.Context, userID, topic, subtopic string, score int) error
	GetUserMastery(userID string) ([]dto.MasteryRecordDTO, error)
}

type masteryTrackerService struct {
	masteryRepo    repository.MasteryRepository
	recommendation ReviewRecommendationService
}

func NewMasteryTrackerService(
	masteryRepo repository.MasteryRepository,
	recommendation ReviewRecommendationService,
) MasteryTrackerService {
	return &masteryTrackerService{
		masteryRepo:    masteryRepo,
		recommendation: recommendation,
	}
}

func (s *masteryTrackerService) RecordTopicScore(ctx context.Context, userID, topic, subtopic string, score int) error {
	record, err := s.masteryRepo.Upsert(userID, topic, subtopic, score >= PassThreshold, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert mastery record for user %s topic %s: %w", userID, topic, err)
	}

	log.Info().
		Str("user_id", userID).
		Str("topic", topic).
		Int("mastery", record.Mastery).
		Int("total_count", record.TotalCount).
		Msg("Mastery record updated")

	// Recommendations fire immediately on every drop below threshold;
	// exactly at the threshold no recommendation is generated.
	if record.Mastery < MasteryThreshold {
		if _, err := s.recommendation.GenerateForRecord(ctx, record); err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("topic", topic).Msg("Failed to generate review recommendations")
		}
	}
	return nil
}

func (s *masteryTrackerService) GetUserMastery(userID string) ([]dto.MasteryRecordDTO, error) {
	records, err := s.masteryRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching mastery records for user %s: %w", userID, err)
	}
	var resp []dto.MasteryRecordDTO
	if err := copier.Copy(&resp, &records); err != nil {
		return nil, fmt.Errorf("error preparing mastery response: %w", err)
	}
	return resp, nil
}
