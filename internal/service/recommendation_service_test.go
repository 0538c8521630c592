package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
)

func weakRecord() *model.MasteryRecord {
	return &model.MasteryRecord{
		ID:           "mr1",
		UserID:       "user1",
		Topic:        "Photosynthesis",
		CorrectCount: 1,
		TotalCount:   4,
		Mastery:      25,
	}
}

func TestGenerateForRecordParsesPayload(t *testing.T) {
	repo := newFakeRecommendationRepo()
	completion := &stubCompletion{responses: []string{`{
		"recommendations": [
			{"type": "review", "priority": 3, "content": "Re-read the chapter on light reactions.", "resources": ["chapter 4"]},
			{"type": "flashcards", "priority": 1, "content": "Drill the vocabulary."}
		]
	}`}}
	svc := NewReviewRecommendationService(repo, completion, &stubGenerator{})

	recs, err := svc.GenerateForRecord(context.Background(), weakRecord())
	if err != nil {
		t.Fatalf("GenerateForRecord failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].Type != model.RecommendationTypeReview {
		t.Fatalf("expected review type, got %q", recs[0].Type)
	}
	// Unknown types normalize to review.
	if recs[1].Type != model.RecommendationTypeReview {
		t.Fatalf("expected unknown type to normalize to review, got %q", recs[1].Type)
	}
	for _, rec := range recs {
		if rec.Status != model.RecommendationStatusPending {
			t.Fatalf("expected pending status, got %q", rec.Status)
		}
		if rec.MasteryRecordID != "mr1" {
			t.Fatalf("expected mastery record link, got %q", rec.MasteryRecordID)
		}
		if _, err := repo.FindByID(rec.ID); err != nil {
			t.Fatalf("recommendation %s was not persisted", rec.ID)
		}
	}
}

func TestGenerateForRecordFallsBackOnFailure(t *testing.T) {
	repo := newFakeRecommendationRepo()
	completion := &stubCompletion{err: ErrCompletionUnavailable}
	generator := &stubGenerator{remedial: &model.Quiz{ID: "rq1", Title: "Remedial: Photosynthesis"}}
	svc := NewReviewRecommendationService(repo, completion, generator)

	recs, err := svc.GenerateForRecord(context.Background(), weakRecord())
	if err != nil {
		t.Fatalf("GenerateForRecord failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected the single fallback recommendation, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Type != model.RecommendationTypeQuiz {
		t.Fatalf("expected fallback quiz type, got %q", rec.Type)
	}
	// A quiz-type recommendation loops back into generation and links the
	// remedial quiz.
	if len(rec.Resources) != 1 || rec.Resources[0] != "quiz:rq1" {
		t.Fatalf("expected linked remedial quiz, got %v", rec.Resources)
	}
}

func TestGenerateForRecordKeepsRecommendationWhenRemedialFails(t *testing.T) {
	repo := newFakeRecommendationRepo()
	completion := &stubCompletion{responses: []string{`{
		"recommendations": [{"type": "quiz", "priority": 5, "content": "Take a practice quiz."}]
	}`}}
	generator := &stubGenerator{remedialErr: ErrCompletionUnavailable}
	svc := NewReviewRecommendationService(repo, completion, generator)

	recs, err := svc.GenerateForRecord(context.Background(), weakRecord())
	if err != nil {
		t.Fatalf("GenerateForRecord failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if len(recs[0].Resources) != 0 {
		t.Fatalf("expected no linked quiz after remedial failure, got %v", recs[0].Resources)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo := newFakeRecommendationRepo()
	repo.Create(&model.ReviewRecommendation{ID: "r1", UserID: "user1", Status: model.RecommendationStatusPending})
	svc := NewReviewRecommendationService(repo, &stubCompletion{}, &stubGenerator{})

	effectiveness := 0.8
	if err := svc.UpdateStatus("r1", model.RecommendationStatusCompleted, &effectiveness); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	rec, _ := repo.FindByID("r1")
	if rec.Status != model.RecommendationStatusCompleted {
		t.Fatalf("expected completed status, got %q", rec.Status)
	}
	if rec.Effectiveness == nil || *rec.Effectiveness != 0.8 {
		t.Fatalf("expected effectiveness 0.8, got %v", rec.Effectiveness)
	}

	// Terminal states reject further transitions.
	err := svc.UpdateStatus("r1", model.RecommendationStatusSkipped, nil)
	if !errors.Is(err, ErrRecommendationFinal) {
		t.Fatalf("expected ErrRecommendationFinal, got %v", err)
	}
}

func TestUpdateStatusRejectsInvalidTarget(t *testing.T) {
	repo := newFakeRecommendationRepo()
	repo.Create(&model.ReviewRecommendation{ID: "r1", UserID: "user1", Status: model.RecommendationStatusPending})
	svc := NewReviewRecommendationService(repo, &stubCompletion{}, &stubGenerator{})

	if err := svc.UpdateStatus("r1", "pending", nil); err == nil {
		t.Fatalf("expected error for pending target status")
	}
	if err := svc.UpdateStatus("r1", "archived", nil); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	rec, _ := repo.FindByID("r1")
	if rec.Status != model.RecommendationStatusPending {
		t.Fatalf("status must be unchanged after rejected updates, got %q", rec.Status)
	}
}

func TestUpdateStatusSkippedIgnoresEffectiveness(t *testing.T) {
	repo := newFakeRecommendationRepo()
	repo.Create(&model.ReviewRecommendation{ID: "r1", UserID: "user1", Status: model.RecommendationStatusPending})
	svc := NewReviewRecommendationService(repo, &stubCompletion{}, &stubGenerator{})

	effectiveness := 0.5
	if err := svc.UpdateStatus("r1", model.RecommendationStatusSkipped, &effectiveness); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	rec, _ := repo.FindByID("r1")
	if rec.Effectiveness != nil {
		t.Fatalf("skipped recommendations must not record effectiveness, got %v", rec.Effectiveness)
	}
}
