package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
)

// AnswerEvaluationService scores one free-text answer against a reference
// answer using a weighted multi-factor analysis. Evaluation is total: any
// failure yields the conservative default result instead of an error, so
// grading always completes.
type AnswerEvaluationService interface {
	Evaluate(ctx context.Context, question *model.Question, referenceAnswer, userAnswer string) *model.EvaluationResult
}

type answerEvaluationService struct {
	completion CompletionService
	weights    ScoringWeights
}

func NewAnswerEvaluationService(completion CompletionService) AnswerEvaluationService {
	return &answerEvaluationService{
		completion: completion,
		weights:    DefaultScoringWeights,
	}
}

func (s *answerEvaluationService) Evaluate(ctx context.Context, question *model.Question, referenceAnswer, userAnswer string) *model.EvaluationResult {
	factors, err := s.analyzeFactors(ctx, question, referenceAnswer, userAnswer)
	if err != nil {
		log.Warn().Err(err).Str("question_id", question.ID).Msg("Factor analysis failed, returning conservative default")
		return conservativeDefault()
	}

	score := s.weights.weightedScore(factors)
	confidence := s.weights.confidence(factors)

	feedback, suggestions, err := s.generateFeedback(ctx, question, userAnswer, factors)
	if err != nil {
		log.Warn().Err(err).Str("question_id", question.ID).Msg("Feedback generation failed, returning conservative default")
		return conservativeDefault()
	}

	return &model.EvaluationResult{
		Score:       score,
		IsCorrect:   score >= PassThreshold,
		Feedback:    feedback,
		Keywords:    dedupe(factors.WellExplainedConcepts),
		Suggestions: suggestions,
		Confidence:  confidence,
	}
}

func conservativeDefault() *model.EvaluationResult {
	return &model.EvaluationResult{
		Score:     0,
		IsCorrect: false,
		Feedback:  unavailableEvaluationFeedback,
	}
}

func (s *answerEvaluationService) analyzeFactors(ctx context.Context, question *model.Question, referenceAnswer, userAnswer string) (evaluationFactors, error) {
	var b strings.Builder
	b.WriteString("You are grading one free-text answer against a reference answer.\n\n")
	b.WriteString("Question:\n---\n")
	b.WriteString(question.Text)
	b.WriteString("\n---\n\nReference answer:\n---\n")
	b.WriteString(referenceAnswer)
	b.WriteString("\n---\n\nStudent answer:\n---\n")
	b.WriteString(userAnswer)
	b.WriteString(`
---

Compare the student answer to the reference answer and respond with a single
JSON object and nothing else, using exactly these fields:
{
  "completeness": 0.0-1.0,
  "accuracy": 0.0-1.0,
  "relevance": 0.0-1.0,
  "understanding": 0.0-1.0,
  "missing_concepts": ["..."],
  "incorrect_concepts": ["..."],
  "well_explained_concepts": ["..."]
}
`)

	raw, err := s.completion.Complete(ctx, b.String())
	if err != nil {
		return evaluationFactors{}, err
	}

	var factors evaluationFactors
	if err := decodeStructured(raw, &factors); err != nil {
		return evaluationFactors{}, fmt.Errorf("could not parse factor analysis: %w", err)
	}

	factors.Completeness = clamp01(factors.Completeness)
	factors.Accuracy = clamp01(factors.Accuracy)
	factors.Relevance = clamp01(factors.Relevance)
	factors.Understanding = clamp01(factors.Understanding)
	return factors, nil
}

type feedbackPayload struct {
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

func (s *answerEvaluationService) generateFeedback(ctx context.Context, question *model.Question, userAnswer string, factors evaluationFactors) (string, []string, error) {
	var b strings.Builder
	b.WriteString("You are writing feedback for a graded free-text answer.\n\n")
	b.WriteString("Question:\n---\n")
	b.WriteString(question.Text)
	b.WriteString("\n---\n\nStudent answer:\n---\n")
	b.WriteString(userAnswer)
	b.WriteString("\n---\n\n")
	if len(factors.WellExplainedConcepts) > 0 {
		b.WriteString(fmt.Sprintf("Concepts the student explained well: %s.\n", strings.Join(factors.WellExplainedConcepts, ", ")))
	}
	if len(factors.MissingConcepts) > 0 {
		b.WriteString(fmt.Sprintf("Concepts the student missed: %s.\n", strings.Join(factors.MissingConcepts, ", ")))
	}
	if len(factors.IncorrectConcepts) > 0 {
		b.WriteString(fmt.Sprintf("Concepts the student got wrong: %s.\n", strings.Join(factors.IncorrectConcepts, ", ")))
	}
	b.WriteString(`
Write feedback that opens with the student's strengths, then lists the
improvement areas tied to the missing and incorrect concepts above, and
closes with actionable, non-repetitive suggestions.

Respond with a single JSON object and nothing else:
{
  "feedback": "...",
  "suggestions": ["..."]
}
`)

	raw, err := s.completion.Complete(ctx, b.String())
	if err != nil {
		return "", nil, err
	}

	var payload feedbackPayload
	if err := decodeStructured(raw, &payload); err != nil {
		return "", nil, fmt.Errorf("could not parse feedback: %w", err)
	}
	if payload.Feedback == "" {
		return "", nil, fmt.Errorf("feedback payload missing feedback text")
	}
	return payload.Feedback, payload.Suggestions, nil
}

// decodeStructured applies the same tolerant JSON location strategy used by
// quiz generation: outermost {...} span first, then fence-stripped text.
func decodeStructured(raw string, out any) error {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), out); err == nil {
			return nil
		}
	}

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return json.Unmarshal([]byte(strings.TrimSpace(cleaned)), out)
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
