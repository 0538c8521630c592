package model

// EvaluationResult is the outcome of scoring one free-text answer. It is
// produced per grading call and folded into the attempt's QuestionResult.
type EvaluationResult struct {
	Score       int      `json:"score"` // 0-100
	IsCorrect   bool     `json:"is_correct"`
	Feedback    string   `json:"feedback"`
	Keywords    []string `json:"keywords,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Confidence  float64  `json:"confidence"` // 0-1
}
