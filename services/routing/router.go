package routing

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services/complexity"
	"github.com/upb/llm-router/services/registry"
	"go.uber.org/zap"
)

// Config holds the router's scoring weights and the recovery default.
type Config struct {
	// CostWeight scales the cost penalty applied to every candidate.
	CostWeight float64

	// LatencyWeight scales the latency penalty applied to every candidate.
	LatencyWeight float64

	// DefaultModelID is returned when no candidate can be resolved.
	DefaultModelID string
}

// DefaultConfig returns the weights used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		CostWeight:     0.3,
		LatencyWeight:  0.2,
		DefaultModelID: "medium-1",
	}
}

// Router selects a registered model for each request. Custom rules are
// evaluated first, highest priority wins; otherwise candidates are scored
// against the classified complexity of the input.
//
// Route and Preview are safe for concurrent callers; the rule set is
// guarded so AddRule/RemoveRule can race with routing without a reader
// observing a partially updated list.
type Router struct {
	config   Config
	registry *registry.Registry
	logger   *zap.Logger

	mu    sync.RWMutex
	rules []Rule
}

// New creates a router over the given registry.
func New(config Config, reg *registry.Registry, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		config:   config,
		registry: reg,
		logger:   logger,
	}
}

// AddRule installs a routing rule. Rules with higher priority are
// evaluated first; equal priorities keep insertion order.
func (r *Router) AddRule(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule)
}

// RemoveRule deletes a rule by name. Returns false when no rule with that
// name exists.
func (r *Router) RemoveRule(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rule := range r.rules {
		if rule.Name == name {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return true
		}
	}
	return false
}

// Rules returns a snapshot of the installed rules sorted by descending
// priority.
func (r *Router) Rules() []Rule {
	return r.sortedRules()
}

// Route returns a routing decision for the input. It never fails: when
// the registry cannot resolve a candidate the decision degrades to the
// configured default model id.
func (r *Router) Route(input string, ctx *models.RoutingContext) *models.RoutingDecision {
	decision := r.decide(input, ctx)
	r.logger.Debug("routing decision",
		zap.String("model", decision.Model.ID),
		zap.String("complexity", string(decision.Complexity)),
		zap.Float64("confidence", decision.Confidence),
		zap.String("reason", decision.Reason))
	return decision
}

// Preview computes the same decision as Route without executing anything.
// It performs no network I/O and leaves no state behind.
func (r *Router) Preview(input string, ctx *models.RoutingContext) *models.RoutingDecision {
	return r.decide(input, ctx)
}

func (r *Router) decide(input string, ctx *models.RoutingContext) *models.RoutingDecision {
	// Rules short-circuit all scoring.
	if decision := r.applyRules(input, ctx); decision != nil {
		return decision
	}

	signals := complexity.Analyze(input)
	classification := complexity.Classify(signals)

	best := r.scoreCandidates(signals, classification.Level, ctx)
	if best == nil {
		return r.defaultDecision(classification)
	}

	return &models.RoutingDecision{
		Model:      best,
		Reason:     fmt.Sprintf("selected for %s task: %s", classification.Level, strings.Join(classification.Reasons, "; ")),
		Complexity: classification.Level,
		Confidence: classification.Confidence,
	}
}

// applyRules evaluates rules by descending priority and returns a decision
// for the first match. Rules bypass classification, so the tier on a rule
// decision is a fixed moderate placeholder.
func (r *Router) applyRules(input string, ctx *models.RoutingContext) *models.RoutingDecision {
	for _, rule := range r.sortedRules() {
		if rule.Predicate == nil || !rule.Predicate.Matches(input, ctx) {
			continue
		}

		target, err := r.registry.Get(rule.TargetModel)
		if err != nil {
			r.logger.Warn("rule targets unregistered model, skipping",
				zap.String("rule", rule.Name),
				zap.String("target", rule.TargetModel))
			continue
		}

		return &models.RoutingDecision{
			Model:      target,
			Reason:     fmt.Sprintf("Rule: %s", rule.Name),
			Complexity: models.ComplexityModerate,
			Confidence: 0.95,
		}
	}
	return nil
}

func (r *Router) sortedRules() []Rule {
	r.mu.RLock()
	snapshot := make([]Rule, len(r.rules))
	copy(snapshot, r.rules)
	r.mu.RUnlock()

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Priority > snapshot[j].Priority
	})
	return snapshot
}

// scoreCandidates returns the highest-scoring registered model. Ties
// resolve to the first-registered candidate.
func (r *Router) scoreCandidates(signals complexity.Signals, level models.ComplexityLevel, ctx *models.RoutingContext) *models.ModelDescriptor {
	var best *models.ModelDescriptor
	var bestScore float64

	for _, m := range r.registry.GetAll() {
		score := r.scoreModel(m, signals, level, ctx)
		if best == nil || score > bestScore {
			best = m
			bestScore = score
		}
	}
	return best
}

func (r *Router) scoreModel(m *models.ModelDescriptor, signals complexity.Signals, level models.ComplexityLevel, ctx *models.RoutingContext) float64 {
	score := 0.0

	if signals.HasCode && m.HasCapability(models.CapabilityCode) {
		score += 20
	}
	if signals.HasMath && m.HasCapability(models.CapabilityMath) {
		score += 20
	}
	if signals.ReasoningIndicators > 0 && m.HasCapability(models.CapabilityReasoning) {
		score += 15
	}

	switch level {
	case models.ComplexityComplex:
		score += float64(len(m.Capabilities)) * 5
		score += float64(m.MaxTokens) / 1000
	case models.ComplexitySimple:
		score += (1 - m.CostPer1KTokens/0.01) * 10
		score += (1 - float64(m.TypicalLatencyMs)/1000) * 10
	}

	score -= m.CostPer1KTokens * 1000 * r.config.CostWeight * 10
	score -= float64(m.TypicalLatencyMs) / 100 * r.config.LatencyWeight

	if ctx.HasBudget() {
		estimatedTokens := float64(signals.WordCount) * 1.5
		estimatedCost := estimatedTokens / 1000 * m.CostPer1KTokens
		if estimatedCost > ctx.Budget {
			score -= 100
		}
	}

	return score
}

// defaultDecision is the recovery path when no candidate resolves. The
// descriptor carries only the configured id; callers treat it as an
// opaque handle.
func (r *Router) defaultDecision(classification complexity.Classification) *models.RoutingDecision {
	return &models.RoutingDecision{
		Model:      &models.ModelDescriptor{ID: r.config.DefaultModelID, Name: r.config.DefaultModelID},
		Reason:     "no candidates available, using default model",
		Complexity: classification.Level,
		Confidence: classification.Confidence,
	}
}
