package client

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services/backend"
	"github.com/upb/llm-router/services/fallback"
	"github.com/upb/llm-router/services/registry"
	"github.com/upb/llm-router/services/routing"
	"go.uber.org/zap"
)

// Backend performs the actual completion call against one model.
type Backend interface {
	ChatCompletion(ctx context.Context, model *models.ModelDescriptor, messages []models.Message) (*backend.ChatResponse, error)
}

// ChatResult is the full outcome of one Chat call: the backend response,
// the routing decision that produced it, and the measured latency/cost.
type ChatResult struct {
	RequestID  string                  `json:"request_id"`
	Response   string                  `json:"response"`
	ModelUsed  string                  `json:"model_used"`
	Decision   *models.RoutingDecision `json:"decision"`
	Attempts   int                     `json:"attempts"`
	LatencyMs  int64                   `json:"latency_ms"`
	TokenCount int                     `json:"token_count"`
	Cost       float64                 `json:"cost"`
}

// ModelStats tracks per-model request outcomes.
type ModelStats struct {
	Requests      int   `json:"requests"`
	Failures      int   `json:"failures"`
	LastLatencyMs int64 `json:"last_latency_ms"`
}

// Client is the top-level façade: it builds a routing decision, executes
// it through the fallback chain against the real backend, and reports
// latency and cost for the model that actually served the request.
type Client struct {
	router   *routing.Router
	registry *registry.Registry
	chain    *fallback.Chain
	backend  Backend
	logger   *zap.Logger

	mu    sync.Mutex
	stats map[string]*ModelStats
}

// New wires a routing client.
func New(router *routing.Router, reg *registry.Registry, chain *fallback.Chain, be Backend, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		router:   router,
		registry: reg,
		chain:    chain,
		backend:  be,
		logger:   logger,
		stats:    make(map[string]*ModelStats),
	}
}

// Chat routes the conversation, executes it with fallback, and returns
// the response together with the decision and usage metrics. The only
// error it returns is the chain's terminal failure; presenting it is the
// caller's responsibility.
func (c *Client) Chat(ctx context.Context, messages []models.Message, rctx *models.RoutingContext) (*ChatResult, error) {
	requestID := uuid.New().String()
	input := concatenate(messages)

	decision := c.router.Route(input, rctx)
	c.logger.Info("dispatching chat request",
		zap.String("request_id", requestID),
		zap.String("model", decision.Model.ID),
		zap.String("complexity", string(decision.Complexity)))

	start := time.Now()
	outcome, err := c.chain.ExecuteWithPrimary(ctx, decision.Model.ID, func(ctx context.Context, modelID string) (interface{}, error) {
		m, err := c.registry.Get(modelID)
		if err != nil {
			return nil, err
		}
		return c.backend.ChatCompletion(ctx, m, messages)
	})
	latency := time.Since(start)

	if err != nil {
		c.recordFailure(decision.Model.ID)
		c.logger.Error("chat request failed",
			zap.String("request_id", requestID),
			zap.Duration("latency", latency),
			zap.Error(err))
		return nil, err
	}

	resp := outcome.Result.(*backend.ChatResponse)
	tokens := resp.TotalTokens()
	if tokens == 0 {
		tokens = estimateTokens(input, resp.Content())
	}

	cost := c.computeCost(outcome.ModelUsed, tokens)
	c.recordSuccess(outcome.ModelUsed, latency.Milliseconds())

	c.logger.Info("chat request completed",
		zap.String("request_id", requestID),
		zap.String("model_used", outcome.ModelUsed),
		zap.Int("attempts", outcome.Attempts),
		zap.Int64("latency_ms", latency.Milliseconds()),
		zap.Int("tokens", tokens),
		zap.Float64("cost", cost))

	return &ChatResult{
		RequestID:  requestID,
		Response:   resp.Content(),
		ModelUsed:  outcome.ModelUsed,
		Decision:   decision,
		Attempts:   outcome.Attempts,
		LatencyMs:  latency.Milliseconds(),
		TokenCount: tokens,
		Cost:       cost,
	}, nil
}

// Stats returns a snapshot of per-model request statistics.
func (c *Client) Stats() map[string]ModelStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]ModelStats, len(c.stats))
	for id, s := range c.stats {
		out[id] = *s
	}
	return out
}

// computeCost splits the token count 70/30 between prompt and completion
// and bills at the rate of the model that actually served the request.
func (c *Client) computeCost(modelID string, tokens int) float64 {
	m, err := c.registry.Get(modelID)
	if err != nil {
		return 0
	}

	promptTokens := math.Round(float64(tokens) * 0.7)
	completionTokens := float64(tokens) - promptTokens
	return (promptTokens + completionTokens) / 1000 * m.CostPer1KTokens
}

func (c *Client) recordSuccess(modelID string, latencyMs int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.statEntry(modelID)
	s.Requests++
	s.LastLatencyMs = latencyMs
}

func (c *Client) recordFailure(modelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.statEntry(modelID)
	s.Requests++
	s.Failures++
}

func (c *Client) statEntry(modelID string) *ModelStats {
	s, exists := c.stats[modelID]
	if !exists {
		s = &ModelStats{}
		c.stats[modelID] = s
	}
	return s
}

func concatenate(messages []models.Message) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, m.Content)
	}
	return strings.Join(parts, "\n")
}

// estimateTokens approximates usage when the backend omits it, at the
// usual four characters per token.
func estimateTokens(input, response string) int {
	return (len(input) + len(response)) / 4
}
