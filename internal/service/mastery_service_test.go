package service

import (
	"context"
	"testing"
	"time"

	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
)

// fakeMasteryRepo applies the same rolling update as the real repository,
// minus the transaction.
type fakeMasteryRepo struct {
	records map[string]*model.MasteryRecord
}

func newFakeMasteryRepo() *fakeMasteryRepo {
	return &fakeMasteryRepo{records: make(map[string]*model.MasteryRecord)}
}

func (r *fakeMasteryRepo) Upsert(userID, topic, subtopic string, correct bool, at time.Time) (*model.MasteryRecord, error) {
	key := userID + "|" + topic + "|" + subtopic
	record, ok := r.records[key]
	if !ok {
		record = &model.MasteryRecord{
			ID:       key,
			UserID:   userID,
			Topic:    topic,
			Subtopic: subtopic,
		}
		r.records[key] = record
	}
	record.Apply(correct, at)
	return record, nil
}

func (r *fakeMasteryRepo) FindByID(id string) (*model.MasteryRecord, error) {
	return r.records[id], nil
}

func (r *fakeMasteryRepo) FindAllByUser(userID string) ([]model.MasteryRecord, error) {
	var out []model.MasteryRecord
	for _, record := range r.records {
		if record.UserID == userID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func TestRecordTopicScoreUpdatesMastery(t *testing.T) {
	repo := newFakeMasteryRepo()
	rec := &stubRecommendation{}
	svc := NewMasteryTrackerService(repo, rec)

	scores := []int{90, 40, 75, 60, 80}
	for _, score := range scores {
		if err := svc.RecordTopicScore(context.Background(), "user1", "Algebra", "", score); err != nil {
			t.Fatalf("RecordTopicScore(%d) failed: %v", score, err)
		}
	}

	record := repo.records["user1|Algebra|"]
	if record.TotalCount != 5 {
		t.Fatalf("expected 5 updates, got %d", record.TotalCount)
	}
	// 90, 75 and 80 clear the pass threshold.
	if record.CorrectCount != 3 {
		t.Fatalf("expected 3 correct, got %d", record.CorrectCount)
	}
	if record.Mastery != 60 {
		t.Fatalf("expected mastery 60, got %d", record.Mastery)
	}
}

func TestRecordTopicScoreTriggersRecommendationBelowThreshold(t *testing.T) {
	repo := newFakeMasteryRepo()
	rec := &stubRecommendation{}
	svc := NewMasteryTrackerService(repo, rec)

	// One failed attempt: mastery 0, well below threshold.
	if err := svc.RecordTopicScore(context.Background(), "user1", "Algebra", "", 30); err != nil {
		t.Fatalf("RecordTopicScore failed: %v", err)
	}
	if len(rec.triggered) != 1 || rec.triggered[0] != "Algebra" {
		t.Fatalf("expected recommendation trigger for Algebra, got %v", rec.triggered)
	}
}

func TestRecordTopicScoreNoTriggerAtOrAboveThreshold(t *testing.T) {
	repo := newFakeMasteryRepo()
	rec := &stubRecommendation{}
	svc := NewMasteryTrackerService(repo, rec)

	// Every attempt passes: mastery 100.
	for i := 0; i < 3; i++ {
		if err := svc.RecordTopicScore(context.Background(), "user1", "Geometry", "", 95); err != nil {
			t.Fatalf("RecordTopicScore failed: %v", err)
		}
	}
	if len(rec.triggered) != 0 {
		t.Fatalf("expected no triggers at mastery 100, got %v", rec.triggered)
	}

	// Exactly at the threshold no recommendation fires either.
	record := &model.MasteryRecord{UserID: "user1", Topic: "Trig"}
	for i := 0; i < 20; i++ {
		record.Apply(i < 17, time.Now())
	}
	if record.Mastery != 85 {
		t.Fatalf("fixture error: expected mastery 85, got %d", record.Mastery)
	}
	repo.records["user1|Trig|"] = record
	if err := svc.RecordTopicScore(context.Background(), "user1", "Trig", "", 100); err != nil {
		t.Fatalf("RecordTopicScore failed: %v", err)
	}
	if len(rec.triggered) != 0 {
		t.Fatalf("expected no trigger at the 85 boundary, got %v", rec.triggered)
	}
}
