package dto

// GenerateQuizRequest is the payload for generating a quiz from a content source.
type GenerateQuizRequest struct {
	SourceType    string   `json:"source_type" binding:"required,oneof=document video course"`
	SourceID      string   `json:"source_id" binding:"required"`
	NumQuestions  int      `json:"num_questions,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty" binding:"omitempty,oneof=easy medium hard mixed"`
	QuestionTypes []string `json:"question_types,omitempty" binding:"omitempty,dive,oneof=multiple_choice true_false open"`
	Topic         string   `json:"topic,omitempty"`
	FocusAreas    []string `json:"focus_areas,omitempty"`
}

// CreateContentSourceRequest registers source material quizzes can be
// generated from.
type CreateContentSourceRequest struct {
	SourceType string `json:"source_type" binding:"required,oneof=document video course"`
	Title      string `json:"title"`
	Body       string `json:"body" binding:"required"`
}

// SubmittedAnswerDTO is one answer inside an attempt submission.
type SubmittedAnswerDTO struct {
	QuestionID string `json:"question_id" binding:"required"`
	Value      string `json:"value" binding:"required"`
}

// SubmitAttemptRequest is the payload for submitting all answers of an attempt.
type SubmitAttemptRequest struct {
	UserID  string               `json:"user_id" binding:"required"`
	Answers []SubmittedAnswerDTO `json:"answers" binding:"required,dive"`
}

// UpdateRecommendationStatusRequest moves a recommendation to a terminal state.
type UpdateRecommendationStatusRequest struct {
	Status        string   `json:"status" binding:"required,oneof=completed skipped"`
	Effectiveness *float64 `json:"effectiveness,omitempty" binding:"omitempty,gte=0,lte=1"`
}
