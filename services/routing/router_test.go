package routing

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services/registry"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, cfg Config, descriptors []models.ModelDescriptor) (*Router, *registry.Registry) {
	t.Helper()
	reg, err := registry.New(descriptors)
	require.NoError(t, err)
	return New(cfg, reg, zap.NewNop()), reg
}

func neutralPair() []models.ModelDescriptor {
	// Two models with no capabilities and zero latency so that, with zero
	// weights, only tie-breaking and explicit penalties separate them.
	return []models.ModelDescriptor{
		{ID: "pricey", Name: "Pricey", Endpoint: "http://pricey", CostPer1KTokens: 0.5, MaxTokens: 4096},
		{ID: "cheap", Name: "Cheap", Endpoint: "http://cheap", CostPer1KTokens: 0.0001, MaxTokens: 4096},
	}
}

func TestRoute_RulePrecedence(t *testing.T) {
	router, _ := newTestRouter(t, DefaultConfig(), nil)

	router.AddRule(Rule{
		Name:        "poetry-to-small",
		Priority:    10,
		Predicate:   &KeywordPredicate{Keywords: []string{"poem"}},
		TargetModel: "small-1",
	})

	// An input that would otherwise score toward a capable model.
	decision := router.Route("Write a poem explaining why the algorithm architecture framework matters. First do X, then Y.", nil)

	assert.Equal(t, "small-1", decision.Model.ID)
	assert.Equal(t, "Rule: poetry-to-small", decision.Reason)
	assert.Equal(t, models.ComplexityModerate, decision.Complexity)
	assert.Equal(t, 0.95, decision.Confidence)
}

func TestRoute_RulePriorityOrdering(t *testing.T) {
	router, _ := newTestRouter(t, DefaultConfig(), nil)

	router.AddRule(Rule{
		Name:        "low",
		Priority:    1,
		Predicate:   &KeywordPredicate{Keywords: []string{"hello"}},
		TargetModel: "small-1",
	})
	router.AddRule(Rule{
		Name:        "high",
		Priority:    5,
		Predicate:   &KeywordPredicate{Keywords: []string{"hello"}},
		TargetModel: "large-1",
	})

	decision := router.Route("hello there", nil)
	assert.Equal(t, "large-1", decision.Model.ID)
	assert.Equal(t, "Rule: high", decision.Reason)
}

func TestRoute_EqualPriorityKeepsInsertionOrder(t *testing.T) {
	router, _ := newTestRouter(t, DefaultConfig(), nil)

	router.AddRule(Rule{
		Name: "first", Priority: 3,
		Predicate:   &KeywordPredicate{Keywords: []string{"hi"}},
		TargetModel: "small-1",
	})
	router.AddRule(Rule{
		Name: "second", Priority: 3,
		Predicate:   &KeywordPredicate{Keywords: []string{"hi"}},
		TargetModel: "large-1",
	})

	decision := router.Route("hi", nil)
	assert.Equal(t, "Rule: first", decision.Reason)
}

func TestRoute_RuleWithUnknownTargetFallsThrough(t *testing.T) {
	router, reg := newTestRouter(t, DefaultConfig(), nil)

	router.AddRule(Rule{
		Name: "broken", Priority: 99,
		Predicate:   &KeywordPredicate{Keywords: []string{"hi"}},
		TargetModel: "nonexistent",
	})

	decision := router.Route("hi", nil)

	_, err := reg.Get(decision.Model.ID)
	assert.NoError(t, err, "decision must degrade to a registered model")
	assert.NotEqual(t, "Rule: broken", decision.Reason)
}

func TestRemoveRule(t *testing.T) {
	router, _ := newTestRouter(t, DefaultConfig(), nil)

	router.AddRule(Rule{
		Name: "temp", Priority: 1,
		Predicate:   &KeywordPredicate{Keywords: []string{"x"}},
		TargetModel: "small-1",
	})

	assert.True(t, router.RemoveRule("temp"))
	assert.False(t, router.RemoveRule("temp"))
	assert.Empty(t, router.Rules())
}

func TestRoute_AlwaysReturnsRegisteredModel(t *testing.T) {
	router, reg := newTestRouter(t, DefaultConfig(), nil)

	inputs := []string{
		"",
		"hi",
		"Write a function to parse JSON",
		"solve 3 + 4 * 2",
		"Why does the database lock? How do I analyze the protocol? What if it deadlocks?",
		"First explain the architecture, then compare the trade-offs of each framework. 1. intro 2. details",
	}

	for _, input := range inputs {
		decision := router.Route(input, nil)
		_, err := reg.Get(decision.Model.ID)
		assert.NoError(t, err, "input %q routed to unregistered model %s", input, decision.Model.ID)
	}
}

func TestRoute_Idempotent(t *testing.T) {
	router, _ := newTestRouter(t, DefaultConfig(), nil)
	router.AddRule(Rule{
		Name: "stable", Priority: 2,
		Predicate:   &KeywordPredicate{Keywords: []string{"translate"}},
		TargetModel: "medium-1",
	})

	ctx := &models.RoutingContext{UserID: "u1", Budget: 0.5}
	input := "Explain how the encryption protocol works and why it is safe."

	first := router.Route(input, ctx)
	second := router.Route(input, ctx)

	assert.Equal(t, first, second)
}

func TestRoute_CodeCapabilitySteering(t *testing.T) {
	// Zero weights isolate the capability bonus.
	cfg := Config{CostWeight: 0, LatencyWeight: 0, DefaultModelID: "plain"}
	router, _ := newTestRouter(t, cfg, []models.ModelDescriptor{
		{ID: "plain", Name: "Plain", Endpoint: "http://plain", MaxTokens: 4096},
		{ID: "coder", Name: "Coder", Endpoint: "http://coder", MaxTokens: 4096,
			Capabilities: []models.Capability{models.CapabilityCode}},
	})

	decision := router.Route("write a function to sort a slice", nil)
	assert.Equal(t, "coder", decision.Model.ID)
}

func TestRoute_BudgetPenalty(t *testing.T) {
	cfg := Config{CostWeight: 0, LatencyWeight: 0, DefaultModelID: "pricey"}
	router, _ := newTestRouter(t, cfg, neutralPair())

	// Moderate tier, no capability bonuses: both models score zero and the
	// tie resolves to the first-registered "pricey".
	input := "solve 2 + 2 and write a function for it"

	decision := router.Route(input, nil)
	assert.Equal(t, "pricey", decision.Model.ID)

	// A tight budget pushes the expensive model's estimate over the
	// ceiling and flips the choice.
	decision = router.Route(input, &models.RoutingContext{Budget: 0.001})
	assert.Equal(t, "cheap", decision.Model.ID)
}

func TestRoute_TieGoesToFirstRegistered(t *testing.T) {
	cfg := Config{CostWeight: 0, LatencyWeight: 0, DefaultModelID: "pricey"}
	router, _ := newTestRouter(t, cfg, neutralPair())

	decision := router.Route("solve 2 + 2 and write a function for it", nil)
	assert.Equal(t, "pricey", decision.Model.ID)
}

func TestPreview_MatchesRoute(t *testing.T) {
	router, _ := newTestRouter(t, DefaultConfig(), nil)

	input := "Why is the api slow? Explain and compare caching options."
	assert.Equal(t, router.Route(input, nil), router.Preview(input, nil))
}

func TestRouter_ConcurrentRuleMutation(t *testing.T) {
	router, _ := newTestRouter(t, DefaultConfig(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("rule-%d", n)
			router.AddRule(Rule{
				Name: name, Priority: n,
				Predicate:   &KeywordPredicate{Keywords: []string{"never-matches-anything"}},
				TargetModel: "small-1",
			})
			router.RemoveRule(name)
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				router.Route("concurrent routing input", nil)
			}
		}()
	}
	wg.Wait()
}
