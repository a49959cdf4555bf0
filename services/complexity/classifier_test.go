package complexity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/upb/llm-router/models"
)

func TestClassify_Tiers(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		level   models.ComplexityLevel
	}{
		{
			name:    "no signals is simple",
			signals: Signals{},
			level:   models.ComplexitySimple,
		},
		{
			name:    "code plus math is moderate",
			signals: Signals{HasCode: true, HasMath: true},
			level:   models.ComplexityModerate,
		},
		{
			name: "everything firing is complex",
			signals: Signals{
				WordCount:           150,
				HasCode:             true,
				HasMath:             true,
				HasMultiStep:        true,
				TechnicalTerms:      4,
				QuestionCount:       3,
				ReasoningIndicators: 2,
			},
			level: models.ComplexityComplex,
		},
		{
			name:    "boundary score of six is complex",
			signals: Signals{HasCode: true, HasMath: true, HasMultiStep: true},
			level:   models.ComplexityComplex,
		},
		{
			name:    "boundary score of three is moderate",
			signals: Signals{HasCode: true, TechnicalTerms: 1},
			level:   models.ComplexityModerate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.signals)
			assert.Equal(t, tt.level, result.Level)
		})
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	// Sweep a range of signal combinations and check the confidence
	// envelope and tier membership hold everywhere.
	for words := 0; words <= 150; words += 50 {
		for terms := 0; terms <= 4; terms += 2 {
			for questions := 0; questions <= 3; questions++ {
				signals := Signals{
					WordCount:           words,
					TechnicalTerms:      terms,
					QuestionCount:       questions,
					HasCode:             words > 100,
					ReasoningIndicators: terms,
				}
				result := Classify(signals)

				assert.Contains(t, []models.ComplexityLevel{
					models.ComplexitySimple, models.ComplexityModerate, models.ComplexityComplex,
				}, result.Level)
				assert.GreaterOrEqual(t, result.Confidence, 0.0)
				assert.LessOrEqual(t, result.Confidence, 0.95)
				assert.NotEmpty(t, result.Reasons)
			}
		}
	}
}

func TestClassify_ConfidenceFormulas(t *testing.T) {
	// score 0 -> simple, confidence 0.8 + 3*0.05 = 0.95
	result := Classify(Signals{})
	assert.Equal(t, models.ComplexitySimple, result.Level)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)

	// score 4 (code + math) -> moderate, confidence 0.7 + 0.5*0.05 = 0.725
	result = Classify(Signals{HasCode: true, HasMath: true})
	assert.Equal(t, models.ComplexityModerate, result.Level)
	assert.InDelta(t, 0.725, result.Confidence, 1e-9)

	// score 6 -> complex, confidence 0.7 + 6*0.03 = 0.88
	result = Classify(Signals{HasCode: true, HasMath: true, HasMultiStep: true})
	assert.Equal(t, models.ComplexityComplex, result.Level)
	assert.InDelta(t, 0.88, result.Confidence, 1e-9)

	// maximum score 12 caps at 0.95
	result = Classify(Signals{
		WordCount: 200, HasCode: true, HasMath: true, HasMultiStep: true,
		TechnicalTerms: 5, QuestionCount: 4, ReasoningIndicators: 3,
	})
	assert.Equal(t, models.ComplexityComplex, result.Level)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
}

func TestClassify_DefaultReason(t *testing.T) {
	result := Classify(Signals{})

	assert.Len(t, result.Reasons, 1)
	assert.Equal(t, "no strong complexity signals", result.Reasons[0])
}

func TestClassify_ReasonsNameSignals(t *testing.T) {
	result := Classify(Signals{WordCount: 120, HasCode: true})

	joined := strings.Join(result.Reasons, "; ")
	assert.Contains(t, joined, "long input")
	assert.Contains(t, joined, "contains code")
}
