package complexity

import (
	"fmt"
	"math"

	"github.com/upb/llm-router/models"
)

// Classification is the result of scoring a set of signals.
type Classification struct {
	Level      models.ComplexityLevel `json:"level"`
	Confidence float64                `json:"confidence"`
	Reasons    []string               `json:"reasons"`
}

// Classify maps signals to a complexity tier using additive weighted
// scoring. Stateless: the result depends on nothing but the signals, and
// the weights and thresholds are fixed.
func Classify(signals Signals) Classification {
	score := 0
	var reasons []string

	switch {
	case signals.WordCount > 100:
		score += 2
		reasons = append(reasons, fmt.Sprintf("long input (%d words)", signals.WordCount))
	case signals.WordCount > 50:
		score++
		reasons = append(reasons, fmt.Sprintf("medium-length input (%d words)", signals.WordCount))
	}

	if signals.HasCode {
		score += 2
		reasons = append(reasons, "contains code")
	}
	if signals.HasMath {
		score += 2
		reasons = append(reasons, "contains math")
	}
	if signals.HasMultiStep {
		score += 2
		reasons = append(reasons, "multi-step request")
	}

	switch {
	case signals.TechnicalTerms >= 3:
		score += 2
		reasons = append(reasons, fmt.Sprintf("technical vocabulary (%d terms)", signals.TechnicalTerms))
	case signals.TechnicalTerms >= 1:
		score++
		reasons = append(reasons, "some technical vocabulary")
	}

	switch {
	case signals.QuestionCount > 2:
		score += 2
		reasons = append(reasons, fmt.Sprintf("multiple questions (%d)", signals.QuestionCount))
	case signals.QuestionCount > 1:
		score++
		reasons = append(reasons, "several questions")
	}

	switch {
	case signals.ReasoningIndicators >= 2:
		score += 2
		reasons = append(reasons, "strong reasoning indicators")
	case signals.ReasoningIndicators >= 1:
		score++
		reasons = append(reasons, "reasoning indicators present")
	}

	if len(reasons) == 0 {
		reasons = []string{"no strong complexity signals"}
	}

	switch {
	case score >= 6:
		return Classification{
			Level:      models.ComplexityComplex,
			Confidence: math.Min(0.95, 0.7+float64(score)*0.03),
			Reasons:    reasons,
		}
	case score >= 3:
		return Classification{
			Level:      models.ComplexityModerate,
			Confidence: 0.7 + math.Abs(float64(score)-4.5)*0.05,
			Reasons:    reasons,
		}
	default:
		return Classification{
			Level:      models.ComplexitySimple,
			Confidence: math.Min(0.95, 0.8+float64(3-score)*0.05),
			Reasons:    reasons,
		}
	}
}
