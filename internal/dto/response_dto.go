package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

// QuestionResponseDTO is used for displaying question details.
type QuestionResponseDTO struct {
	ID            string   `json:"id"`
	QuizID        string   `json:"quiz_id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
	Difficulty    string   `json:"difficulty"`
	Position      int      `json:"position"`
}

// QuizResponseDTO is used for displaying a full quiz.
type QuizResponseDTO struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description,omitempty"`
	Questions        []QuestionResponseDTO `json:"questions,omitempty"`
	TimeLimitMinutes *int                  `json:"time_limit_minutes,omitempty"`
	PassingScore     int                   `json:"passing_score"`
	SourceType       string                `json:"source_type,omitempty"`
	SourceID         string                `json:"source_id,omitempty"`
	GeneratedBy      string                `json:"generated_by,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

// QuizSummaryDTO is used for listing quizzes.
type QuizSummaryDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	QuestionCount int       `json:"question_count"`
	PassingScore  int       `json:"passing_score"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuestionResultDTO is one graded answer inside an attempt result.
type QuestionResultDTO struct {
	QuestionID  string   `json:"question_id"`
	UserAnswer  string   `json:"user_answer"`
	Correct     bool     `json:"correct"`
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Confidence  float64  `json:"confidence,omitempty"`
}

// AttemptResultDTO is the graded outcome of a full attempt.
type AttemptResultDTO struct {
	ID              string              `json:"id"`
	AttemptID       string              `json:"attempt_id"`
	QuizID          string              `json:"quiz_id"`
	UserID          string              `json:"user_id"`
	Score           int                 `json:"score"`
	Passed          bool                `json:"passed"`
	QuestionResults []QuestionResultDTO `json:"question_results,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// AttemptSummaryDTO is used for a user's attempt history.
type AttemptSummaryDTO struct {
	ID          string    `json:"id"`
	QuizID      string    `json:"quiz_id"`
	UserID      string    `json:"user_id"`
	SubmittedAt time.Time `json:"submitted_at"`
	Score       *int      `json:"score,omitempty"`
	Passed      *bool     `json:"passed,omitempty"`
}

// MasteryRecordDTO exposes rolling per-topic statistics.
type MasteryRecordDTO struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Topic        string    `json:"topic"`
	Subtopic     string    `json:"subtopic,omitempty"`
	CorrectCount int       `json:"correct_count"`
	TotalCount   int       `json:"total_count"`
	Mastery      int       `json:"mastery"`
	LastQuizDate time.Time `json:"last_quiz_date"`
}

// RecommendationDTO exposes one review recommendation.
type RecommendationDTO struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	MasteryRecordID string    `json:"mastery_record_id"`
	Type            string    `json:"type"`
	Priority        int       `json:"priority"`
	Content         string    `json:"content"`
	Resources       []string  `json:"resources,omitempty"`
	Status          string    `json:"status"`
	Effectiveness   *float64  `json:"effectiveness,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
