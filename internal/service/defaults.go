package service

import "github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"

// Every deterministic fallback value used by the pipeline lives here, so
// tests can assert against the table instead of re-deriving literals.

const (
	// PassThreshold is shared on purpose: an open answer counts as correct at
	// >= 70, and an attempt passes at aggregate >= 70 (the quiz default).
	PassThreshold = 70

	// MasteryThreshold is the mastery percentage below which remedial
	// recommendations are generated.
	MasteryThreshold = 85

	// sourceQuestionCount applies when generating from a full document,
	// video transcript or course body.
	sourceQuestionCount = 20

	remedialQuestionCount = 3

	fallbackQuizTitle       = "Generated Quiz"
	fallbackQuizDescription = "Automatic quiz generation failed; this is a placeholder quiz."
	fallbackQuizNote        = "The generated output could not be parsed. Please regenerate this quiz."

	defaultQuestionExplanation = "No explanation provided."

	unavailableEvaluationFeedback = "evaluation unavailable"

	fallbackRecommendationContent = "Take a short practice quiz to reinforce this topic."
)

// fallbackQuestions returns the canonical placeholder question set for a
// quiz whose generated payload could not be parsed.
func fallbackQuestions(quizID string) []model.Question {
	return []model.Question{
		{
			ID:            quizID + "_q1",
			QuizID:        quizID,
			Text:          "Which statement best summarizes the source material?",
			Type:          model.QuestionTypeMultipleChoice,
			Options:       []string{"It introduces the main topic", "It is unrelated", "It contradicts itself", "It contains no information"},
			CorrectAnswer: "It introduces the main topic",
			Explanation:   fallbackQuizNote,
			Difficulty:    model.DifficultyMedium,
			Position:      1,
		},
	}
}

// fallbackRecommendation is the single generic recommendation produced when
// the recommendation payload cannot be parsed.
func fallbackRecommendation(userID, masteryRecordID, topic string) model.ReviewRecommendation {
	return model.ReviewRecommendation{
		UserID:          userID,
		MasteryRecordID: masteryRecordID,
		Type:            model.RecommendationTypeQuiz,
		Priority:        1,
		Content:         fallbackRecommendationContent + " Topic: " + topic,
		Status:          model.RecommendationStatusPending,
	}
}
