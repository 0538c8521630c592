package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/dto"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/repository"
)

// ReviewRecommendationService produces prioritized remedial recommendations
// for a below-threshold mastery record and manages their lifecycle
// (pending -> completed | skipped, both terminal).
type ReviewRecommendationService interface {
	GenerateForRecord(ctx context.Context, record *model.MasteryRecord) ([]model.ReviewRecommendation, error)
	GetPending(userID string) ([]dto.RecommendationDTO, error)
	UpdateStatus(id, status string, effectiveness *float64) error
}

type reviewRecommendationService struct {
	recRepo    repository.RecommendationRepository
	completion CompletionService
	generator  QuizGeneratorService
}

func NewReviewRecommendationService(
	recRepo repository.RecommendationRepository,
	completion CompletionService,
	generator QuizGeneratorService,
) ReviewRecommendationService {
	return &reviewRecommendationService{
		recRepo:    recRepo,
		completion: completion,
		generator:  generator,
	}
}

type recommendationPayload struct {
	Recommendations []struct {
		Type      string   `json:"type"`
		Priority  int      `json:"priority"`
		Content   string   `json:"content"`
		Resources []string `json:"resources"`
	} `json:"recommendations"`
}

func (s *reviewRecommendationService) GenerateForRecord(ctx context.Context, record *model.MasteryRecord) ([]model.ReviewRecommendation, error) {
	recs := s.generateRecommendations(ctx, record)

	// Any quiz-type recommendation loops back into the generation engine
	// for a remedial quiz scoped to the weak topic.
	for i := range recs {
		if recs[i].Type != model.RecommendationTypeQuiz {
			continue
		}
		quiz, err := s.generator.GenerateRemedial(ctx, record.Topic)
		if err != nil {
			log.Warn().Err(err).Str("topic", record.Topic).Msg("Remedial quiz generation failed, recommendation kept without linked quiz")
			continue
		}
		recs[i].Resources = append(recs[i].Resources, "quiz:"+quiz.ID)
	}

	if err := s.recRepo.CreateBatch(recs); err != nil {
		return nil, fmt.Errorf("failed to persist recommendations: %w", err)
	}
	return recs, nil
}

// generateRecommendations asks the completion capability for a prioritized
// list and falls back to the single generic quiz recommendation when the
// call or its parsing fails.
func (s *reviewRecommendationService) generateRecommendations(ctx context.Context, record *model.MasteryRecord) []model.ReviewRecommendation {
	fallback := func() []model.ReviewRecommendation {
		rec := fallbackRecommendation(record.UserID, record.ID, record.Topic)
		rec.ID = uuid.NewString()
		return []model.ReviewRecommendation{rec}
	}

	var b strings.Builder
	b.WriteString("A learner is struggling with a topic. Suggest how they should review it.\n\n")
	b.WriteString(fmt.Sprintf("Topic: %s\n", record.Topic))
	if record.Subtopic != "" {
		b.WriteString(fmt.Sprintf("Subtopic: %s\n", record.Subtopic))
	}
	b.WriteString(fmt.Sprintf("Current mastery: %d%% (%d correct of %d attempts)\n", record.Mastery, record.CorrectCount, record.TotalCount))
	b.WriteString(`
Respond with a single JSON object and nothing else:
{
  "recommendations": [
    {
      "type": "quiz" | "review" | "practice",
      "priority": 1-5,
      "content": "what the learner should do, one or two sentences",
      "resources": ["..."]
    }
  ]
}
`)

	raw, err := s.completion.Complete(ctx, b.String())
	if err != nil {
		log.Warn().Err(err).Str("topic", record.Topic).Msg("Recommendation generation call failed, using fallback")
		return fallback()
	}

	var payload recommendationPayload
	if err := decodeStructured(raw, &payload); err != nil || len(payload.Recommendations) == 0 {
		log.Warn().Str("topic", record.Topic).Msg("Recommendation payload could not be parsed, using fallback")
		return fallback()
	}

	recs := make([]model.ReviewRecommendation, 0, len(payload.Recommendations))
	for _, r := range payload.Recommendations {
		recType := r.Type
		switch recType {
		case model.RecommendationTypeQuiz, model.RecommendationTypeReview, model.RecommendationTypePractice:
		default:
			recType = model.RecommendationTypeReview
		}
		content := r.Content
		if content == "" {
			content = fallbackRecommendationContent + " Topic: " + record.Topic
		}
		recs = append(recs, model.ReviewRecommendation{
			ID:              uuid.NewString(),
			UserID:          record.UserID,
			MasteryRecordID: record.ID,
			Type:            recType,
			Priority:        r.Priority,
			Content:         content,
			Resources:       r.Resources,
			Status:          model.RecommendationStatusPending,
		})
	}
	return recs
}

func (s *reviewRecommendationService) GetPending(userID string) ([]dto.RecommendationDTO, error) {
	recs, err := s.recRepo.FindPendingByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching recommendations for user %s: %w", userID, err)
	}
	var resp []dto.RecommendationDTO
	if err := copier.Copy(&resp, &recs); err != nil {
		return nil, fmt.Errorf("error preparing recommendations response: %w", err)
	}
	return resp, nil
}

func (s *reviewRecommendationService) UpdateStatus(id, status string, effectiveness *float64) error {
	rec, err := s.recRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("recommendation not found with ID %s: %w", id, err)
	}
	if rec.Status != model.RecommendationStatusPending {
		return fmt.Errorf("%w: %s is %s", ErrRecommendationFinal, id, rec.Status)
	}
	if status != model.RecommendationStatusCompleted && status != model.RecommendationStatusSkipped {
		return fmt.Errorf("invalid recommendation status %q", status)
	}

	rec.Status = status
	if status == model.RecommendationStatusCompleted {
		rec.Effectiveness = effectiveness
	}
	if err := s.recRepo.Update(rec); err != nil {
		return fmt.Errorf("failed to update recommendation %s: %w", id, err)
	}
	return nil
}
