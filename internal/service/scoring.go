package service

import "math"

// ScoringWeights holds every constant used by the evaluation score and
// confidence formulas. Keeping them in one structure stops the two
// formulas drifting apart.
type ScoringWeights struct {
	Completeness  float64
	Accuracy      float64
	Relevance     float64
	Understanding float64

	ConfCompleteness  float64
	ConfAccuracy      float64
	ConfRelevance     float64
	ConfUnderstanding float64
	ConfCoverage      float64

	// FactorFloor is the cutoff below which a factor only contributes half
	// confidence weight.
	FactorFloor float64
}

var DefaultScoringWeights = ScoringWeights{
	Completeness:  0.25,
	Accuracy:      0.35,
	Relevance:     0.20,
	Understanding: 0.20,

	ConfCompleteness:  0.2,
	ConfAccuracy:      0.3,
	ConfRelevance:     0.2,
	ConfUnderstanding: 0.2,
	ConfCoverage:      0.1,

	FactorFloor: 0.3,
}

// evaluationFactors are the four normalized comparison factors plus the
// concept lists reported by the structured evaluation call.
type evaluationFactors struct {
	Completeness  float64 `json:"completeness"`
	Accuracy      float64 `json:"accuracy"`
	Relevance     float64 `json:"relevance"`
	Understanding float64 `json:"understanding"`

	MissingConcepts       []string `json:"missing_concepts"`
	IncorrectConcepts     []string `json:"incorrect_concepts"`
	WellExplainedConcepts []string `json:"well_explained_concepts"`
}

func clamp01(x float64) float64 {
	return math.Min(math.Max(x, 0), 1)
}

// weightedScore maps the four factors onto a 0-100 score.
func (w ScoringWeights) weightedScore(f evaluationFactors) int {
	raw := w.Completeness*clamp01(f.Completeness) +
		w.Accuracy*clamp01(f.Accuracy) +
		w.Relevance*clamp01(f.Relevance) +
		w.Understanding*clamp01(f.Understanding)
	return int(math.Round(100 * raw))
}

// confidence estimates how reliable the scoring result is. A factor near
// zero halves its contribution; coverage rewards concept lists that account
// for most of what was missing.
func (w ScoringWeights) confidence(f evaluationFactors) float64 {
	factor := func(x float64) float64 {
		if x > w.FactorFloor {
			return 1
		}
		return 0.5
	}

	coverage := math.Min(
		float64(len(f.WellExplainedConcepts)+len(f.IncorrectConcepts))/float64(len(f.MissingConcepts)+1),
		1,
	)

	c := w.ConfCompleteness*factor(f.Completeness) +
		w.ConfAccuracy*factor(f.Accuracy) +
		w.ConfRelevance*factor(f.Relevance) +
		w.ConfUnderstanding*factor(f.Understanding) +
		w.ConfCoverage*coverage
	return clamp01(c)
}
