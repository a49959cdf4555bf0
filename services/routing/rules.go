package routing

import (
	"regexp"
	"strings"

	"github.com/upb/llm-router/models"
)

// Predicate decides whether a rule applies to a request. Implementations
// must be deterministic for a fixed input and context.
type Predicate interface {
	Matches(input string, ctx *models.RoutingContext) bool
}

// PredicateFunc adapts a plain function to the Predicate interface.
type PredicateFunc func(input string, ctx *models.RoutingContext) bool

// Matches implements Predicate.
func (f PredicateFunc) Matches(input string, ctx *models.RoutingContext) bool {
	return f(input, ctx)
}

// KeywordPredicate matches when the input contains any of the configured
// keywords, case-insensitively.
type KeywordPredicate struct {
	Keywords []string
}

// Matches implements Predicate.
func (p *KeywordPredicate) Matches(input string, _ *models.RoutingContext) bool {
	lower := strings.ToLower(input)
	for _, kw := range p.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// RegexPredicate matches the input against a compiled pattern.
type RegexPredicate struct {
	re *regexp.Regexp
}

// NewRegexPredicate compiles pattern into a predicate.
func NewRegexPredicate(pattern string) (*RegexPredicate, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &RegexPredicate{re: re}, nil
}

// Matches implements Predicate.
func (p *RegexPredicate) Matches(input string, _ *models.RoutingContext) bool {
	return p.re.MatchString(input)
}

// DomainPredicate matches when the routing context carries the given
// domain tag.
type DomainPredicate struct {
	Domain string
}

// Matches implements Predicate.
func (p *DomainPredicate) Matches(_ string, ctx *models.RoutingContext) bool {
	return ctx != nil && ctx.Domain == p.Domain
}

// Rule is a priority-ordered override: when its predicate matches, the
// router selects the target model and skips scoring entirely.
type Rule struct {
	Name        string
	Priority    int
	Predicate   Predicate
	TargetModel string
}
