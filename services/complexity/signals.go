package complexity

import (
	"regexp"
	"strings"
)

// Signals holds the structural features extracted from one input string.
// Recomputed per call, never cached.
type Signals struct {
	WordCount           int  `json:"word_count"`
	SentenceCount       int  `json:"sentence_count"`
	HasCode             bool `json:"has_code"`
	HasMath             bool `json:"has_math"`
	HasMultiStep        bool `json:"has_multi_step"`
	TechnicalTerms      int  `json:"technical_terms"`
	QuestionCount       int  `json:"question_count"`
	ReasoningIndicators int  `json:"reasoning_indicators"`
}

var (
	codeKeywordRe = regexp.MustCompile(`(?i)\b(function|class|def|func|var|let|const)\b`)
	mathExprRe    = regexp.MustCompile(`[0-9]\s*[+\-*/^=]\s*[0-9]`)
	mathWordRe    = regexp.MustCompile(`(?i)\b(solve|calculate|equation)\b`)
	multiStepRe   = regexp.MustCompile(`(?is)\bfirst\b.*\bthen\b|\bstep\s+[0-9]`)
	enumListRe    = regexp.MustCompile(`(?m)^\s*[0-9]+[.)]\s`)
	sentenceRe    = regexp.MustCompile(`[.!?]+`)

	technicalTermRe = regexp.MustCompile(`\b(algorithm|architecture|database|api|framework|protocol|encryption|authentication|optimization|concurrency|asynchronous|recursive|polymorphism|abstraction)\b`)
	reasoningRe     = regexp.MustCompile(`\b(why|how|explain|compare|analyze|evaluate)\b|what if|pros and cons|trade-?offs?`)
)

// Analyze extracts complexity signals from raw input text. It is a total,
// deterministic function: defined for every string including the empty
// string, with no side effects.
func Analyze(input string) Signals {
	lower := strings.ToLower(input)

	return Signals{
		WordCount:           len(strings.Fields(input)),
		SentenceCount:       countSentences(input),
		HasCode:             detectCode(input),
		HasMath:             mathExprRe.MatchString(input) || mathWordRe.MatchString(input),
		HasMultiStep:        multiStepRe.MatchString(input) || enumListRe.MatchString(input),
		TechnicalTerms:      len(technicalTermRe.FindAllString(lower, -1)),
		QuestionCount:       strings.Count(input, "?"),
		ReasoningIndicators: len(reasoningRe.FindAllString(lower, -1)),
	}
}

func detectCode(input string) bool {
	if strings.Contains(input, "```") {
		return true
	}
	if strings.Contains(input, "=>") {
		return true
	}
	return codeKeywordRe.MatchString(input)
}

func countSentences(input string) int {
	count := 0
	for _, part := range sentenceRe.Split(input, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}
