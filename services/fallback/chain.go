package fallback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrAllModelsFailed is the single terminal error this package propagates:
// every candidate exhausted its retry budget. Match with errors.Is.
var ErrAllModelsFailed = errors.New("all models failed")

// AllFailedError wraps the most recent underlying failure once the whole
// chain is exhausted.
type AllFailedError struct {
	Attempts int
	LastErr  error
}

// Error implements the error interface.
func (e *AllFailedError) Error() string {
	return fmt.Sprintf("all models failed after %d attempts: %v", e.Attempts, e.LastErr)
}

// Unwrap exposes the last underlying failure.
func (e *AllFailedError) Unwrap() error {
	return e.LastErr
}

// Is matches ErrAllModelsFailed.
func (e *AllFailedError) Is(target error) bool {
	return target == ErrAllModelsFailed
}

// Operation is the caller-supplied call executed against one candidate
// model. Any non-nil error counts as a retryable per-attempt failure.
type Operation func(ctx context.Context, modelID string) (interface{}, error)

// Outcome is the result of the first successful attempt. Attempts is the
// total call count across all models tried, failed attempts included.
type Outcome struct {
	Result    interface{}
	ModelUsed string
	Attempts  int
}

// Config holds the chain's candidate order and retry policy.
type Config struct {
	// Models is the priority order, cheapest/fastest first by convention.
	Models []string

	// MaxRetries is the extra attempts per model beyond the first.
	MaxRetries int

	// RetryDelay is the fixed wait between attempts of the same model.
	RetryDelay time.Duration
}

// Chain executes an operation against a priority-ordered candidate list,
// retrying each model up to 1+MaxRetries times before escalating to the
// next. Attempts are strictly sequential; candidates never race.
type Chain struct {
	config Config
	logger *zap.Logger
}

// New creates a fallback chain.
func New(config Config, logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{config: config, logger: logger}
}

// Models returns the configured candidate order.
func (c *Chain) Models() []string {
	out := make([]string, len(c.config.Models))
	copy(out, c.config.Models)
	return out
}

// Execute runs fn against the configured candidate order.
func (c *Chain) Execute(ctx context.Context, fn Operation) (*Outcome, error) {
	return c.run(ctx, c.config.Models, fn)
}

// ExecuteWithPrimary runs fn with primary tried first, followed by the
// configured candidates (minus the primary) in their original order.
func (c *Chain) ExecuteWithPrimary(ctx context.Context, primary string, fn Operation) (*Outcome, error) {
	order := make([]string, 0, len(c.config.Models)+1)
	order = append(order, primary)
	for _, id := range c.config.Models {
		if id != primary {
			order = append(order, id)
		}
	}
	return c.run(ctx, order, fn)
}

func (c *Chain) run(ctx context.Context, order []string, fn Operation) (*Outcome, error) {
	if len(order) == 0 {
		return nil, &AllFailedError{Attempts: 0, LastErr: errors.New("no models configured")}
	}

	attempts := 0
	var lastErr error

	for _, modelID := range order {
		for retry := 0; retry <= c.config.MaxRetries; retry++ {
			if retry > 0 {
				if err := c.wait(ctx); err != nil {
					return nil, fmt.Errorf("fallback canceled after %d attempts: %w", attempts, err)
				}
			}

			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("fallback canceled after %d attempts: %w", attempts, err)
			}

			attempts++
			result, err := fn(ctx, modelID)
			if err == nil {
				return &Outcome{Result: result, ModelUsed: modelID, Attempts: attempts}, nil
			}
			lastErr = err

			// A canceled context is not a model failure; stop advancing.
			if ctx.Err() != nil {
				return nil, fmt.Errorf("fallback canceled after %d attempts: %w", attempts, ctx.Err())
			}

			c.logger.Warn("model attempt failed",
				zap.String("model", modelID),
				zap.Int("attempt", attempts),
				zap.Int("retry", retry),
				zap.Error(err))
		}
	}

	return nil, &AllFailedError{Attempts: attempts, LastErr: lastErr}
}

func (c *Chain) wait(ctx context.Context) error {
	if c.config.RetryDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(c.config.RetryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
