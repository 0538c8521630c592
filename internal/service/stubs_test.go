package service

import (
	"context"
	"fmt"

	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/dto"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
	"gorm.io/gorm"
)

// stubCompletion replays queued responses in order. An empty queue or a set
// error simulates an unreachable completion capability.
type stubCompletion struct {
	responses []string
	err       error
	prompts   []string
}

func (s *stubCompletion) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", fmt.Errorf("%w: no scripted response", ErrCompletionUnavailable)
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *stubCompletion) ModelName() string { return "stub-model" }

type fakeQuizRepo struct {
	quizzes map[string]*model.Quiz
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[string]*model.Quiz)}
}

func (r *fakeQuizRepo) Create(quiz *model.Quiz) error {
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *fakeQuizRepo) FindByID(id string) (*model.Quiz, error) {
	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (r *fakeQuizRepo) FindByIDWithQuestions(id string) (*model.Quiz, error) {
	return r.FindByID(id)
}

func (r *fakeQuizRepo) FindAllWithQuestionCount() ([]struct {
	model.Quiz
	QuestionCount int
}, error) {
	rows := make([]struct {
		model.Quiz
		QuestionCount int
	}, 0, len(r.quizzes))
	for _, quiz := range r.quizzes {
		rows = append(rows, struct {
			model.Quiz
			QuestionCount int
		}{Quiz: *quiz, QuestionCount: len(quiz.Questions)})
	}
	return rows, nil
}

type fakeContentRepo struct {
	sources map[string]*model.ContentSource
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{sources: make(map[string]*model.ContentSource)}
}

func (r *fakeContentRepo) Create(source *model.ContentSource) error {
	r.sources[source.SourceType+"/"+source.ID] = source
	return nil
}

func (r *fakeContentRepo) FindByTypeAndID(sourceType, id string) (*model.ContentSource, error) {
	source, ok := r.sources[sourceType+"/"+id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return source, nil
}

func (r *fakeContentRepo) FindRecentByTopic(topic string, limit int) ([]model.ContentSource, error) {
	return nil, nil
}

type fakeAttemptRepo struct {
	attempts map[string]*model.Attempt
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{attempts: make(map[string]*model.Attempt)}
}

func (r *fakeAttemptRepo) Create(attempt *model.Attempt) error {
	r.attempts[attempt.ID] = attempt
	return nil
}

func (r *fakeAttemptRepo) FindByID(id string) (*model.Attempt, error) {
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return attempt, nil
}

func (r *fakeAttemptRepo) FindAllByUser(userID string) ([]model.Attempt, error) {
	var out []model.Attempt
	for _, attempt := range r.attempts {
		if attempt.UserID == userID {
			out = append(out, *attempt)
		}
	}
	return out, nil
}

type fakeResultRepo struct {
	results map[string]*model.AttemptResult
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: make(map[string]*model.AttemptResult)}
}

func (r *fakeResultRepo) Create(result *model.AttemptResult) error {
	r.results[result.ID] = result
	return nil
}

func (r *fakeResultRepo) FindByID(id string) (*model.AttemptResult, error) {
	result, ok := r.results[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return result, nil
}

func (r *fakeResultRepo) FindByAttemptID(attemptID string) (*model.AttemptResult, error) {
	for _, result := range r.results {
		if result.AttemptID == attemptID {
			return result, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeResultRepo) FindAllByUser(userID string) ([]model.AttemptResult, error) {
	var out []model.AttemptResult
	for _, result := range r.results {
		if result.UserID == userID {
			out = append(out, *result)
		}
	}
	return out, nil
}

type fakeRecommendationRepo struct {
	recs map[string]*model.ReviewRecommendation
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{recs: make(map[string]*model.ReviewRecommendation)}
}

func (r *fakeRecommendationRepo) Create(rec *model.ReviewRecommendation) error {
	stored := *rec
	r.recs[rec.ID] = &stored
	return nil
}

func (r *fakeRecommendationRepo) CreateBatch(recs []model.ReviewRecommendation) error {
	for i := range recs {
		if err := r.Create(&recs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRecommendationRepo) FindByID(id string) (*model.ReviewRecommendation, error) {
	rec, ok := r.recs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *fakeRecommendationRepo) FindPendingByUser(userID string) ([]model.ReviewRecommendation, error) {
	var out []model.ReviewRecommendation
	for _, rec := range r.recs {
		if rec.UserID == userID && rec.Status == model.RecommendationStatusPending {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeRecommendationRepo) Update(rec *model.ReviewRecommendation) error {
	stored := *rec
	r.recs[rec.ID] = &stored
	return nil
}

// stubEvaluation grades by a per-answer table so grader tests control open
// question scores without a completion round-trip.
type stubEvaluation struct {
	byAnswer map[string]*model.EvaluationResult
}

func (s *stubEvaluation) Evaluate(_ context.Context, _ *model.Question, _ string, userAnswer string) *model.EvaluationResult {
	if result, ok := s.byAnswer[userAnswer]; ok {
		return result
	}
	return conservativeDefault()
}

// stubMastery records RecordTopicScore calls without touching storage.
type stubMastery struct {
	calls []masteryCall
}

type masteryCall struct {
	userID   string
	topic    string
	subtopic string
	score    int
}

func (s *stubMastery) RecordTopicScore(_ context.Context, userID, topic, subtopic string, score int) error {
	s.calls = append(s.calls, masteryCall{userID: userID, topic: topic, subtopic: subtopic, score: score})
	return nil
}

func (s *stubMastery) GetUserMastery(string) ([]dto.MasteryRecordDTO, error) {
	return nil, nil
}

// stubGenerator serves recommendation tests that only need GenerateRemedial.
type stubGenerator struct {
	remedial    *model.Quiz
	remedialErr error
}

func (s *stubGenerator) Generate(context.Context, dto.GenerateQuizRequest) (*dto.QuizResponseDTO, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubGenerator) GenerateRemedial(context.Context, string) (*model.Quiz, error) {
	if s.remedialErr != nil {
		return nil, s.remedialErr
	}
	return s.remedial, nil
}

func (s *stubGenerator) GetQuiz(string) (*dto.QuizResponseDTO, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubGenerator) ListQuizzes() ([]dto.QuizSummaryDTO, error) {
	return nil, nil
}

// stubRecommendation counts GenerateForRecord triggers for mastery tests.
type stubRecommendation struct {
	triggered []string
}

func (s *stubRecommendation) GenerateForRecord(_ context.Context, record *model.MasteryRecord) ([]model.ReviewRecommendation, error) {
	s.triggered = append(s.triggered, record.Topic)
	return nil, nil
}

func (s *stubRecommendation) GetPending(string) ([]dto.RecommendationDTO, error) {
	return nil, nil
}

func (s *stubRecommendation) UpdateStatus(string, string, *float64) error {
	return nil
}
