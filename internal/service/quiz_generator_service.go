package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/dto"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/repository"
)

// QuizGeneratorService builds a generation request from extracted source
// text, invokes the completion capability and normalizes the result into a
// persisted Quiz. Generation is total: any malformed model output becomes
// the canonical fallback quiz; only transport/auth failures propagate.
type QuizGeneratorService interface {
	Generate(ctx context.Context, req dto.GenerateQuizRequest) (*dto.QuizResponseDTO, error)
	GenerateRemedial(ctx context.Context, topic string) (*model.Quiz, error)
	GetQuiz(id string) (*dto.QuizResponseDTO, error)
	ListQuizzes() ([]dto.QuizSummaryDTO, error)
}

type quizGeneratorService struct {
	extractor   ContentExtractorService
	completion  CompletionService
	quizRepo    repository.QuizRepository
	contentRepo repository.ContentSourceRepository
}

func NewQuizGeneratorService(
	extractor ContentExtractorService,
	completion CompletionService,
	quizRepo repository.QuizRepository,
	contentRepo repository.ContentSourceRepository,
) QuizGeneratorService {
	return &quizGeneratorService{
		extractor:   extractor,
		completion:  completion,
		quizRepo:    quizRepo,
		contentRepo: contentRepo,
	}
}

func (s *quizGeneratorService) Generate(ctx context.Context, req dto.GenerateQuizRequest) (*dto.QuizResponseDTO, error) {
	content, err := s.extractor.Extract(req.SourceType, req.SourceID)
	if err != nil {
		return nil, err
	}

	count := req.NumQuestions
	if count <= 0 {
		// Full document/video/course bodies get the larger default.
		count = sourceQuestionCount
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMixed
	}
	types := req.QuestionTypes
	if len(types) == 0 {
		types = []string{model.QuestionTypeMultipleChoice, model.QuestionTypeTrueFalse, model.QuestionTypeOpen}
	}

	prompt := buildQuizPrompt(content, count, difficulty, types, req.Topic, req.FocusAreas)

	raw, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		// Transport/auth/rate-limit failures are the only hard errors here.
		log.Error().Err(err).Str("source_id", req.SourceID).Msg("Completion capability failed during quiz generation")
		return nil, err
	}

	quizID := uuid.NewString()
	quiz := parseQuizPayload(raw, quizID)
	quiz.SourceType = req.SourceType
	quiz.SourceID = req.SourceID
	quiz.GeneratedBy = s.completion.ModelName()

	if err := s.quizRepo.Create(quiz); err != nil {
		log.Error().Err(err).Str("quiz_id", quiz.ID).Msg("Failed to persist generated quiz")
		return nil, fmt.Errorf("failed to persist quiz: %w", err)
	}

	var resp dto.QuizResponseDTO
	if err := copier.Copy(&resp, quiz); err != nil {
		return nil, fmt.Errorf("error preparing quiz response: %w", err)
	}
	return &resp, nil
}

// GenerateRemedial produces a short topic-scoped quiz used by review
// recommendations, sourced from recent material matching the topic.
func (s *quizGeneratorService) GenerateRemedial(ctx context.Context, topic string) (*model.Quiz, error) {
	content := topic
	sources, err := s.contentRepo.FindRecentByTopic(topic, 3)
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("Could not load recent topic material for remedial quiz")
	} else if len(sources) > 0 {
		var b strings.Builder
		for _, src := range sources {
			b.WriteString(src.Body)
			b.WriteString("\n\n")
			if b.Len() > maxContentChars {
				break
			}
		}
		content = b.String()
		if len(content) > maxContentChars {
			content = cutAtRuneBoundary(content, maxContentChars) + truncationMarker
		}
	}

	prompt := buildQuizPrompt(content, remedialQuestionCount, model.DifficultyMedium,
		[]string{model.QuestionTypeMultipleChoice, model.QuestionTypeTrueFalse, model.QuestionTypeOpen},
		topic, nil)

	raw, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	quizID := uuid.NewString()
	quiz := parseQuizPayload(raw, quizID)
	quiz.Title = "Remedial: " + topic
	quiz.SourceType = model.SourceTypeCourse
	quiz.GeneratedBy = s.completion.ModelName()

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to persist remedial quiz: %w", err)
	}
	return quiz, nil
}

func (s *quizGeneratorService) GetQuiz(id string) (*dto.QuizResponseDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(id)
	if err != nil {
		return nil, err
	}
	var resp dto.QuizResponseDTO
	if err := copier.Copy(&resp, quiz); err != nil {
		return nil, fmt.Errorf("error preparing quiz response: %w", err)
	}
	return &resp, nil
}

func (s *quizGeneratorService) ListQuizzes() ([]dto.QuizSummaryDTO, error) {
	rows, err := s.quizRepo.FindAllWithQuestionCount()
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.QuizSummaryDTO, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, dto.QuizSummaryDTO{
			ID:            row.ID,
			Title:         row.Title,
			Description:   row.Description,
			QuestionCount: row.QuestionCount,
			PassingScore:  row.PassingScore,
			CreatedAt:     row.CreatedAt,
		})
	}
	return summaries, nil
}

func buildQuizPrompt(content string, count int, difficulty string, types []string, topic string, focusAreas []string) string {
	var b strings.Builder
	b.WriteString("You are an expert exam author. Create a quiz from the source material below.\n\n")
	b.WriteString(fmt.Sprintf("Generate exactly %d questions with difficulty %q.\n", count, difficulty))
	b.WriteString(fmt.Sprintf("Allowed question types: %s.\n", strings.Join(types, ", ")))
	if topic != "" {
		b.WriteString(fmt.Sprintf("The quiz topic is %q.\n", topic))
	}
	if len(focusAreas) > 0 {
		b.WriteString(fmt.Sprintf("Focus especially on: %s.\n", strings.Join(focusAreas, ", ")))
	}
	b.WriteString(`
Respond with a single JSON object and nothing else, in this shape:
{
  "title": "...",
  "description": "...",
  "questions": [
    {
      "text": "...",
      "type": "multiple_choice" | "true_false" | "open",
      "options": ["..."],
      "correct_answer": "..." (or true/false for true_false questions),
      "explanation": "...",
      "difficulty": "easy" | "medium" | "hard"
    }
  ]
}

Source material:
---
`)
	b.WriteString(content)
	b.WriteString("\n---\n")
	return b.String()
}

// generatedQuestionPayload tolerates the shape drift of model output:
// alternate keys, non-array options, boolean answers.
type generatedQuestionPayload struct {
	Text          string          `json:"text"`
	Question      string          `json:"question"`
	Type          string          `json:"type"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer any             `json:"correct_answer"`
	Explanation   string          `json:"explanation"`
	Difficulty    string          `json:"difficulty"`
}

type generatedQuizPayload struct {
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Questions   []generatedQuestionPayload `json:"questions"`
}

// parseQuizPayload turns raw completion output into a well-formed Quiz.
// It never fails: unparseable output yields the canonical fallback quiz.
func parseQuizPayload(raw, quizID string) *model.Quiz {
	quiz := &model.Quiz{
		ID:           quizID,
		PassingScore: PassThreshold,
	}

	var payload generatedQuizPayload
	if err := decodeStructured(raw, &payload); err != nil || len(payload.Questions) == 0 {
		log.Warn().Str("quiz_id", quizID).Msg("Generated output could not be parsed, using fallback quiz")
		quiz.Title = fallbackQuizTitle
		quiz.Description = fallbackQuizDescription
		quiz.Questions = fallbackQuestions(quizID)
		return quiz
	}

	quiz.Title = payload.Title
	if quiz.Title == "" {
		quiz.Title = fallbackQuizTitle
	}
	quiz.Description = payload.Description
	if quiz.Description == "" {
		quiz.Description = "Quiz generated from source material."
	}

	questions := make([]model.Question, 0, len(payload.Questions))
	for i, q := range payload.Questions {
		questions = append(questions, normalizeQuestion(q, quizID, i+1))
	}
	quiz.Questions = questions
	return quiz
}

func normalizeQuestion(q generatedQuestionPayload, quizID string, position int) model.Question {
	text := q.Text
	if text == "" {
		text = q.Question
	}

	qType := q.Type
	switch qType {
	case model.QuestionTypeMultipleChoice, model.QuestionTypeTrueFalse, model.QuestionTypeOpen:
	default:
		qType = model.QuestionTypeOpen
	}

	answer := normalizeAnswer(q.CorrectAnswer)

	var options []string
	if qType == model.QuestionTypeMultipleChoice {
		options = normalizeOptions(q.Options, answer)
	}

	difficulty := q.Difficulty
	switch difficulty {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		difficulty = model.DifficultyMedium
	}

	explanation := q.Explanation
	if explanation == "" {
		explanation = defaultQuestionExplanation
	}

	return model.Question{
		ID:            fmt.Sprintf("%s_q%d", quizID, position),
		QuizID:        quizID,
		Text:          text,
		Type:          qType,
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   explanation,
		Difficulty:    difficulty,
		Position:      position,
	}
}

// normalizeAnswer flattens the string-or-boolean correct answer.
func normalizeAnswer(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

// normalizeOptions replaces a non-array options value with a single-element
// default instead of failing the whole question.
func normalizeOptions(raw json.RawMessage, answer string) []string {
	if len(raw) > 0 {
		var options []string
		if err := json.Unmarshal(raw, &options); err == nil && len(options) > 0 {
			return options
		}
		var single string
		if err := json.Unmarshal(raw, &single); err == nil && single != "" {
			return []string{single}
		}
	}
	if answer != "" {
		return []string{answer}
	}
	return []string{"True"}
}
