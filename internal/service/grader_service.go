package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/dto"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/repository"
)

// SubmissionGraderService grades every answer of an attempt: objective
// types by equality, open types through the evaluation engine. It persists
// the AttemptResult (the source of truth for score) and feeds the mastery
// tracker afterwards.
type SubmissionGraderService interface {
	SubmitAttempt(ctx context.Context, quizID string, req dto.SubmitAttemptRequest) (*dto.AttemptResultDTO, error)
	GetAttemptResult(attemptID string) (*dto.AttemptResultDTO, error)
	GetUserAttempts(userID string) ([]dto.AttemptSummaryDTO, error)
}

type submissionGraderService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
	resultRepo  repository.AttemptResultRepository
	evaluation  AnswerEvaluationService
	mastery     MasteryTrackerService
}

func NewSubmissionGraderService(
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	resultRepo repository.AttemptResultRepository,
	evaluation AnswerEvaluationService,
	mastery MasteryTrackerService,
) SubmissionGraderService {
	return &submissionGraderService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		resultRepo:  resultRepo,
		evaluation:  evaluation,
		mastery:     mastery,
	}
}

// gradedAnswer carries one goroutine's grading outcome back to the
// aggregating loop.
type gradedAnswer struct {
	result        model.QuestionResult
	originalIndex int
}

func (s *submissionGraderService) SubmitAttempt(ctx context.Context, quizID string, req dto.SubmitAttemptRequest) (*dto.AttemptResultDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		log.Error().Err(err).Str("quiz_id", quizID).Msg("SubmitAttempt: quiz not found")
		return nil, fmt.Errorf("quiz not found with ID %s: %w", quizID, err)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("quiz %s has no questions, submission is not possible", quizID)
	}

	questionMap := make(map[string]model.Question)
	for _, q := range quiz.Questions {
		questionMap[q.ID] = q
	}

	attempt := model.Attempt{
		ID:     uuid.NewString(),
		QuizID: quizID,
		UserID: req.UserID,
	}
	var validAnswers []dto.SubmittedAnswerDTO
	for _, ans := range req.Answers {
		if _, exists := questionMap[ans.QuestionID]; !exists {
			log.Warn().Str("question_id", ans.QuestionID).Str("quiz_id", quizID).Msg("SubmitAttempt: answer for a question not part of this quiz, skipping")
			continue
		}
		attempt.Answers = append(attempt.Answers, model.Answer{
			AttemptID:  attempt.ID,
			QuestionID: ans.QuestionID,
			Value:      ans.Value,
		})
		validAnswers = append(validAnswers, ans)
	}
	if len(validAnswers) == 0 {
		return nil, fmt.Errorf("no valid answers provided for the questions in quiz %s", quizID)
	}

	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Str("attempt_id", attempt.ID).Msg("SubmitAttempt: failed to persist attempt")
		return nil, fmt.Errorf("failed to persist attempt: %w", err)
	}

	// Open questions are evaluated concurrently; evaluation is read-only
	// until the aggregation below.
	resultsChan := make(chan gradedAnswer, len(validAnswers))
	for i, ans := range validAnswers {
		go func(idx int, ans dto.SubmittedAnswerDTO) {
			question := questionMap[ans.QuestionID]
			resultsChan <- gradedAnswer{
				result:        s.gradeOne(ctx, question, ans.Value),
				originalIndex: idx,
			}
		}(i, ans)
	}

	graded := make([]model.QuestionResult, len(validAnswers))
	totalScore := 0
	for range validAnswers {
		ga := <-resultsChan
		graded[ga.originalIndex] = ga.result
		totalScore += ga.result.Score
	}
	close(resultsChan)

	aggregate := int(math.Round(float64(totalScore) / float64(len(graded))))
	result := model.AttemptResult{
		ID:              uuid.NewString(),
		AttemptID:       attempt.ID,
		QuizID:          quizID,
		UserID:          req.UserID,
		Score:           aggregate,
		Passed:          aggregate >= quiz.PassingScore,
		QuestionResults: graded,
	}
	for i := range result.QuestionResults {
		result.QuestionResults[i].AttemptResultID = result.ID
	}

	if err := s.resultRepo.Create(&result); err != nil {
		log.Error().Err(err).Str("attempt_id", attempt.ID).Msg("SubmitAttempt: failed to persist attempt result")
		return nil, fmt.Errorf("failed to persist attempt result: %w", err)
	}

	// Mastery update is an independently retryable step: the persisted
	// AttemptResult stays authoritative even if this fails.
	topic := quiz.Title
	subtopic := subtopicFor(quiz.Questions)
	if err := s.mastery.RecordTopicScore(ctx, req.UserID, topic, subtopic, aggregate); err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Str("topic", topic).Msg("SubmitAttempt: mastery update failed")
	}

	return toAttemptResultDTO(&result)
}

func (s *submissionGraderService) gradeOne(ctx context.Context, question model.Question, value string) model.QuestionResult {
	qr := model.QuestionResult{
		QuestionID: question.ID,
		UserAnswer: value,
	}

	switch question.Type {
	case model.QuestionTypeOpen:
		eval := s.evaluation.Evaluate(ctx, &question, question.CorrectAnswer, value)
		qr.Score = eval.Score
		qr.Correct = eval.Score >= PassThreshold
		qr.Feedback = eval.Feedback
		qr.Keywords = eval.Keywords
		qr.Suggestions = eval.Suggestions
		qr.Confidence = eval.Confidence
	default:
		if answersEqual(question, value) {
			qr.Correct = true
			qr.Score = 100
		}
		qr.Feedback = question.Explanation
	}
	return qr
}

// answersEqual checks an objective answer against the marked-correct value.
// Comparison ignores surrounding whitespace and case, which also covers
// "True"/"true" for true_false questions.
func answersEqual(question model.Question, value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(question.CorrectAnswer))
}

// subtopicFor derives the optional mastery subtopic from the first
// question's text.
func subtopicFor(questions []model.Question) string {
	if len(questions) == 0 {
		return ""
	}
	return cutAtRuneBoundary(questions[0].Text, 40)
}

func (s *submissionGraderService) GetAttemptResult(attemptID string) (*dto.AttemptResultDTO, error) {
	result, err := s.resultRepo.FindByAttemptID(attemptID)
	if err != nil {
		return nil, fmt.Errorf("attempt result not found for attempt %s: %w", attemptID, err)
	}
	return toAttemptResultDTO(result)
}

func (s *submissionGraderService) GetUserAttempts(userID string) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching attempts for user %s: %w", userID, err)
	}
	results, err := s.resultRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching attempt results for user %s: %w", userID, err)
	}
	resultByAttempt := make(map[string]model.AttemptResult, len(results))
	for _, r := range results {
		resultByAttempt[r.AttemptID] = r
	}

	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		summary := dto.AttemptSummaryDTO{
			ID:          attempt.ID,
			QuizID:      attempt.QuizID,
			UserID:      attempt.UserID,
			SubmittedAt: attempt.SubmittedAt,
		}
		if r, ok := resultByAttempt[attempt.ID]; ok {
			score := r.Score
			passed := r.Passed
			summary.Score = &score
			summary.Passed = &passed
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func toAttemptResultDTO(result *model.AttemptResult) (*dto.AttemptResultDTO, error) {
	var resp dto.AttemptResultDTO
	if err := copier.Copy(&resp, result); err != nil {
		return nil, fmt.Errorf("error preparing attempt result response: %w", err)
	}
	sort.SliceStable(resp.QuestionResults, func(i, j int) bool {
		return resp.QuestionResults[i].QuestionID < resp.QuestionResults[j].QuestionID
	})
	return &resp, nil
}
